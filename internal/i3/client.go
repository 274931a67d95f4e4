package i3

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"strings"
	"time"
)

const DefaultTimeout = 5 * time.Second

// Client manages the Unix domain socket connection to i3.
// Each invocation opens its own connection; there is no pooling.
type Client struct {
	socketPath string
	conn       net.Conn
	timeout    time.Duration
}

// NewClient creates a new i3 IPC client. An empty socketPath means the path
// is discovered on first use.
func NewClient(socketPath string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// SocketPath returns the i3 IPC socket path from $I3SOCK, falling back to
// asking i3 itself.
func SocketPath() (string, error) {
	if p := os.Getenv("I3SOCK"); p != "" {
		return p, nil
	}
	out, err := exec.Command("i3", "--get-socketpath").Output()
	if err != nil {
		return "", fmt.Errorf("cannot determine i3 socket path: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Connect establishes the Unix domain socket connection
func (c *Client) Connect() error {
	path := c.socketPath
	if path == "" {
		var err error
		path, err = SocketPath()
		if err != nil {
			return err
		}
	}
	conn, err := net.Dial("unix", path)
	if err != nil {
		return fmt.Errorf("failed to connect to i3 socket %s: %w", path, err)
	}
	c.conn = conn
	return nil
}

// Close closes the connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected returns true if the connection is established
func (c *Client) IsConnected() bool {
	return c.conn != nil
}

// roundTrip sends one message and reads the matching reply payload.
func (c *Client) roundTrip(msgType uint32, payload []byte) ([]byte, error) {
	if !c.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("failed to set write deadline: %w", err)
	}
	if _, err := c.conn.Write(encodeMessage(msgType, payload)); err != nil {
		return nil, fmt.Errorf("failed to write request: %w", err)
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("failed to set read deadline: %w", err)
	}
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(c.conn, header); err != nil {
		return nil, fmt.Errorf("failed to read reply header: %w", err)
	}
	replyType, length, err := decodeHeader(header)
	if err != nil {
		return nil, err
	}
	if replyType != msgType {
		return nil, fmt.Errorf("expected reply type %d, got %d", msgType, replyType)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(c.conn, body); err != nil {
		return nil, fmt.Errorf("failed to read reply payload: %w", err)
	}
	return body, nil
}

// GetTree retrieves the full window tree as a fresh snapshot.
func (c *Client) GetTree() (*Node, error) {
	body, err := c.roundTrip(TypeGetTree, nil)
	if err != nil {
		return nil, err
	}

	var root Node
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("failed to decode tree: %w", err)
	}
	return &root, nil
}

// GetWorkspaces retrieves the workspace list.
func (c *Client) GetWorkspaces() ([]Workspace, error) {
	body, err := c.roundTrip(TypeGetWorkspaces, nil)
	if err != nil {
		return nil, err
	}

	var workspaces []Workspace
	if err := json.Unmarshal(body, &workspaces); err != nil {
		return nil, fmt.Errorf("failed to decode workspaces: %w", err)
	}
	return workspaces, nil
}

// RunCommand executes an i3 command string. It returns an error when any
// part of the command is rejected by i3.
func (c *Client) RunCommand(command string) error {
	body, err := c.roundTrip(TypeRunCommand, []byte(command))
	if err != nil {
		return err
	}

	var results []CommandResult
	if err := json.Unmarshal(body, &results); err != nil {
		return fmt.Errorf("failed to decode command result: %w", err)
	}
	for _, r := range results {
		if !r.Success {
			if r.Error != "" {
				return fmt.Errorf("command %q rejected: %s", command, r.Error)
			}
			return fmt.Errorf("command %q rejected", command)
		}
	}
	return nil
}
