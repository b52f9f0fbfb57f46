package ipc

import (
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

const (
	dialTimeout        = 2 * time.Second
	defaultCallTimeout = 10 * time.Second
)

// TransportError reports that the daemon never answered: the socket was
// unreachable, the connection broke, or the call timed out. It is distinct
// from a domain rejection, which always arrives inside a response body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("daemon unreachable during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client provides RPC access to the daemon. Every call carries a timeout so a
// silent daemon surfaces as a TransportError instead of a hung caller.
type Client struct {
	conn        net.Conn
	client      *rpc.Client
	callTimeout time.Duration
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient, callTimeout: defaultCallTimeout}, nil
}

// SetCallTimeout overrides the per-call timeout. Watch calls add their wait
// window on top of this value.
func (c *Client) SetCallTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.callTimeout = timeout
	}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) call(method string, req, resp any, timeout time.Duration) error {
	call := c.client.Go(method, req, resp, make(chan *rpc.Call, 1))
	select {
	case done := <-call.Done:
		if done.Error != nil {
			return &TransportError{Op: method, Err: done.Error}
		}
		return nil
	case <-time.After(timeout):
		return &TransportError{Op: method, Err: fmt.Errorf("no response within %s", timeout)}
	}
}

// SaveIcon stores a transformed asset set under the given display name.
func (c *Client) SaveIcon(req SaveIconRequest) (*SaveIconResponse, error) {
	var resp SaveIconResponse
	if err := c.call("Emblem.SaveIcon", req, &resp, c.callTimeout); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SwitchIcon changes the active selection.
func (c *Client) SwitchIcon(selector string) (*SwitchIconResponse, error) {
	var resp SwitchIconResponse
	req := SwitchIconRequest{Selector: selector}
	if err := c.call("Emblem.SwitchIcon", req, &resp, c.callTimeout); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteIcon removes a stored icon.
func (c *Client) DeleteIcon(id string) (*DeleteIconResponse, error) {
	var resp DeleteIconResponse
	req := DeleteIconRequest{ID: id}
	if err := c.call("Emblem.DeleteIcon", req, &resp, c.callTimeout); err != nil {
		return nil, err
	}
	return &resp, nil
}

// State fetches the current collection snapshot.
func (c *Client) State() (*StateResponse, error) {
	var resp StateResponse
	if err := c.call("Emblem.State", StateRequest{}, &resp, c.callTimeout); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Watch long-polls for a state newer than the given revision.
func (c *Client) Watch(req WatchRequest) (*WatchResponse, error) {
	wait := time.Duration(req.WaitMillis) * time.Millisecond
	if wait <= 0 {
		wait = defaultWatchWait
	}
	if wait > maxWatchWait {
		wait = maxWatchWait
	}
	timeout := c.callTimeout + wait
	var resp WatchResponse
	if err := c.call("Emblem.Watch", req, &resp, timeout); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves daemon runtime information.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.call("Emblem.Status", StatusRequest{}, &resp, c.callTimeout); err != nil {
		return nil, err
	}
	return &resp, nil
}
