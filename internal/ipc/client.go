package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
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

// Scan submits one task code for synchronous processing.
func (c *Client) Scan(taskCode string) (*ScanResponse, error) {
	var resp ScanResponse
	if err := c.client.Call(serviceName+".Scan", ScanRequest{TaskCode: taskCode}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LedgerList fetches the current scan ledger.
func (c *Client) LedgerList() (*LedgerListResponse, error) {
	var resp LedgerListResponse
	if err := c.client.Call(serviceName+".LedgerList", LedgerListRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LedgerRemove drops one line from the ledger.
func (c *Client) LedgerRemove(lineID int64) (*LedgerRemoveResponse, error) {
	var resp LedgerRemoveResponse
	if err := c.client.Call(serviceName+".LedgerRemove", LedgerRemoveRequest{LineID: lineID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LedgerClear empties the ledger.
func (c *Client) LedgerClear() (*LedgerClearResponse, error) {
	var resp LedgerClearResponse
	if err := c.client.Call(serviceName+".LedgerClear", LedgerClearRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Inventory pushes the ledger to inventory.
func (c *Client) Inventory() (*InventoryResponse, error) {
	var resp InventoryResponse
	if err := c.client.Call(serviceName+".Inventory", InventoryRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Probe tests backend reachability.
func (c *Client) Probe() (*ProbeResponse, error) {
	var resp ProbeResponse
	if err := c.client.Call(serviceName+".Probe", ProbeRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PrintTest exercises the print integration.
func (c *Client) PrintTest() (*PrintTestResponse, error) {
	var resp PrintTestResponse
	if err := c.client.Call(serviceName+".PrintTest", PrintTestRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NotifyTest exercises the notification channel.
func (c *Client) NotifyTest() (*NotifyTestResponse, error) {
	var resp NotifyTestResponse
	if err := c.client.Call(serviceName+".NotifyTest", NotifyTestRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Start requests the daemon to start processing.
func (c *Client) Start() (*StartResponse, error) {
	var resp StartResponse
	if err := c.client.Call(serviceName+".Start", StartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to stop processing.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call(serviceName+".Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call(serviceName+".Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
