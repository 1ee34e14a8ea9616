package smartcube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"
)

var (
	ErrNotConnected     = errors.New("smartcube: not connected to device")
	ErrAlreadyConnected = errors.New("smartcube: already connected to a device")
	ErrDeviceNotFound   = errors.New("smartcube: device not found")
)

var (
	serviceUUID = bluetooth.NewUUID(uuid.MustParse(ServiceUUID))
	txCharUUID  = bluetooth.NewUUID(uuid.MustParse(TxCharUUID))
	rxCharUUID  = bluetooth.NewUUID(uuid.MustParse(RxCharUUID))
)

// connectScanTimeout bounds the search for a known address.
const connectScanTimeout = 10 * time.Second

// ScanResult is a discovered GoCube.
type ScanResult struct {
	Name    string
	Address string
	RSSI    int16
	address bluetooth.Address
}

// commandWriter is the cube's command characteristic. The cube only
// accepts writes without response.
type commandWriter interface {
	WriteWithoutResponse(p []byte) (int, error)
}

// Client manages the BLE connection to one cube.
type Client struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	txChar  bluetooth.DeviceCharacteristic
	rxChar  commandWriter

	mu        sync.RWMutex
	connected bool
	name      string
	address   string
	battery   int

	onEvent func(Event)
	onError func(error)
}

// NewClient enables the default adapter.
func NewClient() (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	return &Client{
		adapter: adapter,
		battery: -1,
	}, nil
}

// SetEventCallback sets the callback for decoded notifications. It runs on
// the BLE goroutine.
func (c *Client) SetEventCallback(cb func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvent = cb
}

// SetErrorCallback sets the callback for notifications that fail to parse.
func (c *Client) SetErrorCallback(cb func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = cb
}

// Scan collects GoCube advertisements until the timeout or ctx ends.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		scanErr error
	)
	done := make(chan struct{})

	go func() {
		defer close(done)
		scanErr = c.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			addr := result.Address.String()

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] || !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{
				Name:    name,
				Address: addr,
				RSSI:    result.RSSI,
				address: result.Address,
			})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	case <-done:
	}

	c.adapter.StopScan()
	<-done

	mu.Lock()
	defer mu.Unlock()
	return results, scanErr
}

// Connect scans for address and connects to it.
func (c *Client) Connect(ctx context.Context, address string) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	found := make(chan ScanResult, 1)
	var once sync.Once

	go func() {
		c.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			if result.Address.String() != address {
				return
			}
			once.Do(func() {
				found <- ScanResult{
					Name:    result.LocalName(),
					Address: address,
					RSSI:    result.RSSI,
					address: result.Address,
				}
			})
		})
	}()

	var target ScanResult
	select {
	case target = <-found:
		c.adapter.StopScan()
	case <-time.After(connectScanTimeout):
		c.adapter.StopScan()
		return ErrDeviceNotFound
	case <-ctx.Done():
		c.adapter.StopScan()
		return ctx.Err()
	}

	return c.ConnectToResult(ctx, target)
}

// ConnectToResult connects to a device returned by Scan.
func (c *Client) ConnectToResult(ctx context.Context, result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := c.adapter.Connect(result.address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return fmt.Errorf("smartcube: GoCube service not found")
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.txChar = txChar
	c.rxChar = rxChar
	c.connected = true
	c.name = result.Name
	c.address = result.Address
	c.mu.Unlock()

	return c.RequestBattery()
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.name = ""
	c.address = ""
	c.battery = -1

	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Address returns the connected device address.
func (c *Client) Address() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address
}

// Battery returns the last known battery level, or -1.
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		return fmt.Errorf("failed to send command 0x%02x: %w", cmd, err)
	}
	return nil
}

// RequestBattery asks the cube for its battery level.
func (c *Client) RequestBattery() error {
	return c.SendCommand(CmdRequestBattery)
}

// EnableOrientation turns on orientation notifications.
func (c *Client) EnableOrientation() error {
	return c.SendCommand(CmdEnableOrientation)
}

// CalibrateOrientation makes the current pose the reference pose.
func (c *Client) CalibrateOrientation() error {
	return c.SendCommand(CmdCalibrateOrientation)
}

// ResetSolved tells the cube it is solved.
func (c *Client) ResetSolved() error {
	return c.SendCommand(CmdResetSolved)
}

func (c *Client) handleNotification(data []byte) {
	c.mu.RLock()
	onEvent, onError := c.onEvent, c.onError
	c.mu.RUnlock()

	ev, err := c.decode(data)
	if err != nil {
		if onError != nil {
			onError(err)
		}
		return
	}
	if onEvent != nil {
		onEvent(ev)
	}
}

func (c *Client) decode(data []byte) (Event, error) {
	msg, err := ParseMessage(data)
	if err != nil {
		return Event{}, err
	}
	ev, err := Decode(msg)
	if err != nil {
		return Event{}, err
	}
	if ev.Type == MsgTypeBattery {
		c.mu.Lock()
		c.battery = ev.Battery
		c.mu.Unlock()
	}
	return ev, nil
}
