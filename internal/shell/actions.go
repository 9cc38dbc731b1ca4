package shell

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/HerbHall/netinventory/internal/export"
	"github.com/HerbHall/netinventory/internal/inventory"
	"github.com/HerbHall/netinventory/internal/subnet"
	"github.com/HerbHall/netinventory/pkg/models"
)

func typeNames() []string {
	out := make([]string, 0, len(models.AllDeviceTypes()))
	for _, t := range models.AllDeviceTypes() {
		out = append(out, string(t))
	}
	return out
}

func statusNames() []string {
	out := make([]string, 0, len(models.AllDeviceStatuses()))
	for _, st := range models.AllDeviceStatuses() {
		out = append(out, string(st))
	}
	return out
}

func (s *Shell) addDevice(ctx context.Context) error {
	s.view.println()
	s.view.println(s.view.title.Render("Add New Device"))

	var f inventory.NewDevice
	var err error
	if f.Name, err = s.promptNonEmpty(ctx, "Device name"); err != nil {
		return err
	}
	if f.DeviceType, err = s.promptChoice(ctx, "Device type", typeNames()); err != nil {
		return err
	}
	f.IP, err = s.promptValid(ctx, "IP address (IPv4/IPv6)",
		"Invalid IP address. Example: 192.168.1.10 or 2001:db8::1", inventory.ValidateIP)
	if err != nil {
		return err
	}
	if f.Location, err = s.promptNonEmpty(ctx, "Location (e.g., Minneapolis HQ, Seattle Branch)"); err != nil {
		return err
	}
	if f.Owner, err = s.promptNonEmpty(ctx, "Owner / primary user"); err != nil {
		return err
	}
	if f.Status, err = s.promptChoice(ctx, "Status", statusNames()); err != nil {
		return err
	}
	if f.Notes, err = s.prompt(ctx, "Notes (optional)"); err != nil {
		return err
	}

	d, err := s.store.Add(f)
	if err != nil {
		s.view.failure("  " + err.Error())
		return nil
	}
	s.view.println()
	s.view.success(fmt.Sprintf("Added device %s.", d.DeviceID))
	return nil
}

// findDevice runs the search prompt and resolves it to one device. A nil
// device with a nil error means nothing was selected.
func (s *Shell) findDevice(ctx context.Context) (*models.Device, error) {
	if s.store.Len() == 0 {
		s.view.println()
		s.view.warning("Inventory is empty.")
		return nil, nil
	}

	s.view.println()
	query, err := s.prompt(ctx, "Search (device ID like DEV-0001 or keyword)")
	if err != nil {
		return nil, err
	}
	found := s.store.Find(query)
	switch len(found) {
	case 0:
		s.view.warning("No matches.")
		return nil, nil
	case 1:
		return found[0], nil
	}

	s.view.matches(found)
	for {
		choice, err := s.prompt(ctx, "Select a number (or press Enter to cancel)")
		if err != nil {
			return nil, err
		}
		d, ok, err := inventory.Select(found, choice)
		if err != nil {
			s.view.warning("  Invalid selection.")
			continue
		}
		if !ok {
			return nil, nil
		}
		return d, nil
	}
}

func (s *Shell) updateOrRetire(ctx context.Context) error {
	target, err := s.findDevice(ctx)
	if err != nil || target == nil {
		return err
	}

	s.view.println()
	s.view.println(s.view.title.Render("Selected:"))
	s.view.details(target)

	action, err := s.promptChoice(ctx, "Action", []string{"Update", "Retire", "Cancel"})
	if err != nil {
		return err
	}

	switch action {
	case "Cancel":
		return nil
	case "Retire":
		s.store.Retire(target)
		s.view.println()
		s.view.success(fmt.Sprintf("%s marked as Retired.", target.DeviceID))
		return nil
	}

	s.view.println()
	s.view.println(s.view.dim.Render("Leave any field blank to keep current value."))
	s.view.println()

	var p inventory.Patch
	if p.Owner, err = s.prompt(ctx, fmt.Sprintf("Owner [%s]", target.Owner)); err != nil {
		return err
	}
	if p.Location, err = s.prompt(ctx, fmt.Sprintf("Location [%s]", target.Location)); err != nil {
		return err
	}
	if p.Status, err = s.prompt(ctx, fmt.Sprintf("Status [%s] (Active/Spare/Repair/Retired)", target.Status)); err != nil {
		return err
	}
	notes := target.Notes
	if notes == "" {
		notes = "(none)"
	}
	if p.Notes, err = s.prompt(ctx, fmt.Sprintf("Notes [%s]", notes)); err != nil {
		return err
	}

	if err := s.store.Update(target, p); err != nil {
		if !errors.Is(err, inventory.ErrInvalidStatus) {
			return err
		}
		s.view.warning("  Invalid status entered; keeping previous status.")
	}
	s.view.println()
	s.view.success("Device updated.")
	return nil
}

func (s *Shell) planSubnet(ctx context.Context) error {
	s.view.println()
	s.view.println(s.view.title.Render("Subnet Planner"))
	s.view.println("Enter a network in CIDR format, e.g., 10.0.10.0/24 or 2001:db8::/64")

	for {
		cidr, err := s.prompt(ctx, "CIDR network")
		if err != nil {
			return err
		}
		r, err := subnet.Plan(cidr)
		if err != nil {
			s.logger.Debug("subnet rejected", zap.String("input", cidr), zap.Error(err))
			s.view.warning("  Invalid CIDR. Try again (example: 192.168.1.0/24).")
			continue
		}
		s.metrics.SubnetPlan(string(r.Family()))
		s.logger.Info("subnet planned", zap.String("prefix", r.Prefix.String()))
		s.view.plan(r)
		return nil
	}
}

func (s *Shell) exportDevices() {
	n, err := export.ToFile(s.exportPath, s.exportFormat, s.store.Snapshot())
	s.view.println()
	switch {
	case err != nil:
		s.logger.Error("export failed", zap.String("path", s.exportPath), zap.Error(err))
		s.view.failure("Export failed: " + err.Error())
	case n == 0:
		s.view.warning("Nothing to export (inventory is empty).")
	default:
		s.metrics.Operation("export")
		s.logger.Info("inventory exported", zap.String("path", s.exportPath), zap.Int("devices", n))
		s.view.success(fmt.Sprintf("Exported %d device(s) to %s", n, filepath.Base(s.exportPath)))
	}
}
