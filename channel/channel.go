package channel

import (
	"context"
	"sync"
	"time"

	"github.com/usi-samples/usi-client-go/soap"
	"github.com/usi-samples/usi-client-go/sts"
	"github.com/usi-samples/usi-client-go/usi"
)

// headerTTL is the validity of the WS-Security timestamp on a call.
const headerTTL = 5 * time.Minute

// Channel is an authenticated connection to the USI service.
type Channel struct {
	client *soap.Client
	token  *sts.SecurityToken
	now    func() time.Time

	mu     sync.Mutex
	closed bool
}

var _ usi.Service = &Channel{}

func newChannel(client *soap.Client, token *sts.SecurityToken) *Channel {
	return &Channel{client: client, token: token, now: time.Now}
}

// Token returns the issued token the channel authenticates with.
func (c *Channel) Token() *sts.SecurityToken {
	return c.token
}

// Close marks the channel closed. It is safe to call more than once.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *Channel) call(ctx context.Context, operation string, in, out interface{}) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}

	now := c.now()
	if c.token.Expired(now) {
		return &sts.AuthenticationError{Op: operation, Err: sts.ErrTokenExpired}
	}

	security := soap.NewSecurity(now, headerTTL).WithToken(c.token.Assertion)
	return c.client.Call(ctx, usi.Action(operation), security, in, out)
}

func (c *Channel) CreateUSI(ctx context.Context, req *usi.CreateUSIRequest) (*usi.CreateUSIResponse, error) {
	var resp usi.CreateUSIResponse
	if err := c.call(ctx, usi.OpCreateUSI, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Channel) VerifyUSI(ctx context.Context, req *usi.VerifyUSIRequest) (*usi.VerifyUSIResponse, error) {
	var resp usi.VerifyUSIResponse
	if err := c.call(ctx, usi.OpVerifyUSI, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Channel) BulkUpload(ctx context.Context, req *usi.BulkUploadRequest) (*usi.BulkUploadResponse, error) {
	var resp usi.BulkUploadResponse
	if err := c.call(ctx, usi.OpBulkUpload, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Channel) BulkUploadRetrieve(ctx context.Context, req *usi.BulkUploadRetrieveRequest) (*usi.BulkUploadRetrieveResponse, error) {
	var resp usi.BulkUploadRetrieveResponse
	if err := c.call(ctx, usi.OpBulkUploadRetrieve, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Channel) BulkVerifyUSI(ctx context.Context, req *usi.BulkVerifyUSIRequest) (*usi.BulkVerifyUSIResponse, error) {
	var resp usi.BulkVerifyUSIResponse
	if err := c.call(ctx, usi.OpBulkVerifyUSI, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Channel) UpdateUSIContactDetails(ctx context.Context, req *usi.UpdateUSIContactDetailsRequest) (*usi.UpdateUSIContactDetailsResponse, error) {
	var resp usi.UpdateUSIContactDetailsResponse
	if err := c.call(ctx, usi.OpUpdateUSIContactDetails, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Channel) GetNonDvsDocumentTypes(ctx context.Context, req *usi.GetNonDvsDocumentTypesRequest) (*usi.GetNonDvsDocumentTypesResponse, error) {
	var resp usi.GetNonDvsDocumentTypesResponse
	if err := c.call(ctx, usi.OpGetNonDvsDocumentTypes, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
