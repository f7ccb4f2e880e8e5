package staging

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/binding"
)

// ErrPartialTransaction marks a transaction that failed after some packets
// were already acknowledged. The device holds a mix of old and new
// bindings; staged changes are kept so a retry can converge it.
var ErrPartialTransaction = errors.New("staging: transaction partially applied")

// PacketBuilder builds the reports that store one binding.
type PacketBuilder interface {
	BuildPackets(button venus.ButtonKey, action binding.Action) ([]venus.Report, error)
}

// Transport sends one report and blocks until the device acknowledges it.
type Transport interface {
	SendReliable(r venus.Report) error
}

// Controller applies a Manager's staged changes to the device. Packets for
// every staged button are built before anything is sent, so a build error
// costs no device writes. Staged state is only committed after every packet
// was acknowledged; on any failure it is left untouched for retry.
type Controller struct {
	builder PacketBuilder
	device  Transport
	log     *slog.Logger
}

func NewController(builder PacketBuilder, device Transport, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{builder: builder, device: device, log: logger}
}

type batchItem struct {
	button  venus.ButtonKey
	reports []venus.Report
}

// buildBatch builds all packets in ascending button order, giving the
// transaction a deterministic wire order.
func (c *Controller) buildBatch(m *Manager) ([]batchItem, error) {
	changes := m.StagedChanges()
	batch := make([]batchItem, 0, len(changes))
	buttons := make([]venus.ButtonKey, 0, len(changes))
	for button := range changes {
		buttons = append(buttons, button)
	}
	slices.Sort(buttons)
	for _, button := range buttons {
		reports, err := c.builder.BuildPackets(button, changes[button])
		if err != nil {
			return nil, fmt.Errorf("staging: build packets for %v: %w", button, err)
		}
		batch = append(batch, batchItem{button: button, reports: reports})
	}
	return batch, nil
}

// Plan returns the full report sequence Execute would send, including the
// trailing commit pair. Nothing is sent and staging is not modified.
func (c *Controller) Plan(m *Manager) ([]venus.Report, error) {
	batch, err := c.buildBatch(m)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, nil
	}
	var reports []venus.Report
	for _, item := range batch {
		reports = append(reports, item.reports...)
	}
	return append(reports, venus.PreparePackets()...), nil
}

// Execute applies all staged changes. The flash has no transaction support:
// packets acknowledged before a failure stay written on the device, but the
// staged set survives every failure so the caller can simply retry.
func (c *Controller) Execute(m *Manager) error {
	batch, err := c.buildBatch(m)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		c.log.Debug("no staged changes to apply")
		return nil
	}

	sent := 0
	for _, item := range batch {
		c.log.Debug("applying binding", "button", item.button.String(), "packets", len(item.reports))
		for _, r := range item.reports {
			if err := c.device.SendReliable(r); err != nil {
				if sent > 0 {
					return fmt.Errorf("%w: %d packets acknowledged before %v failed: %w",
						ErrPartialTransaction, sent, item.button, err)
				}
				return fmt.Errorf("staging: apply %v: %w", item.button, err)
			}
			sent++
		}
	}
	for _, r := range venus.PreparePackets() {
		if err := c.device.SendReliable(r); err != nil {
			return fmt.Errorf("%w: commit pair after %d packets: %w", ErrPartialTransaction, sent, err)
		}
	}

	m.Commit()
	c.log.Info("applied staged bindings", "buttons", len(batch), "packets", sent)
	return nil
}
