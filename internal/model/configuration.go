package model

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// Configuration is the live option model behind a configurator session.
// Mutate it through the Set* methods so dependent fields stay consistent.
type Configuration struct {
	Type          FurnitureType     `json:"furniture_type"`
	Dimensions    Dimensions        `json:"dimensions"`
	Options       StructuralOptions `json:"options"`
	Material      MaterialSelection `json:"material"`
	HasWhiteEdges bool              `json:"has_white_edges"`
	DoorsOpen     bool              `json:"doors_open"`
}

// NewConfiguration returns the default configuration for t.
func NewConfiguration(t FurnitureType) Configuration {
	return Configuration{
		Type:       t,
		Dimensions: DefaultDimensions(t),
		Options:    DefaultStructuralOptions(),
		Material:   DefaultMaterialSelection(),
	}
}

// Compartments returns the number of compartments the dividers create.
func (c *Configuration) Compartments() int {
	return c.Options.ColumnCount + 1
}

// SetType switches the furniture type and resets the dimensions to the
// type's defaults.
func (c *Configuration) SetType(t FurnitureType) {
	c.Type = t
	c.SetDimensions(DefaultDimensions(t))
}

// SetDimensions updates the size, clamping the column count to what the new
// width allows.
func (c *Configuration) SetDimensions(d Dimensions) {
	c.Dimensions = d
	c.SetColumnCount(c.Options.ColumnCount)
}

// SetColumnCount sets the number of dividers, clamped to [0, MaxColumns],
// and resizes the compartment door list to match.
func (c *Configuration) SetColumnCount(n int) {
	c.Options.ColumnCount = ClampColumns(n, c.Dimensions.Width)
	c.Options.CompartmentDoors = ReconcileCompartmentDoors(c.Options.CompartmentDoors, c.Compartments())
}

// SetShelfCount sets the shelves per compartment.
func (c *Configuration) SetShelfCount(n int) {
	if n < 0 {
		n = 0
	}
	c.Options.ShelfCount = n
}

// SetCompartmentDoor changes the door layout of compartment i. Out of range
// indices are ignored.
func (c *Configuration) SetCompartmentDoor(i int, t CompartmentDoorType) {
	if i < 0 || i >= len(c.Options.CompartmentDoors) {
		return
	}
	doors := make([]CompartmentDoor, len(c.Options.CompartmentDoors))
	copy(doors, c.Options.CompartmentDoors)
	doors[i] = CompartmentDoor{Type: t}
	c.Options.CompartmentDoors = doors
}

// SetPattern selects a catalogue pattern, or clears it when p is nil.
func (c *Configuration) SetPattern(p *Pattern) {
	c.Material.Pattern = p
	if p == nil {
		c.Material.PatternID = ""
		return
	}
	c.Material.PatternID = p.ID
}

// Normalize brings a loaded configuration back in line with the update rules.
func (c *Configuration) Normalize() {
	if c.Options.DoorConfig == "" {
		c.Options.DoorConfig = DoorsOne
	}
	if c.Options.DoorDirection == "" {
		c.Options.DoorDirection = HingeLeft
	}
	if c.Options.BackPanel.Thickness <= 0 {
		c.Options.BackPanel.Thickness = DefaultBackPanelConfig().Thickness
	}
	c.SetShelfCount(c.Options.ShelfCount)
	c.SetColumnCount(c.Options.ColumnCount)
}

// Validate reports every inconsistency in the configuration.
func (c Configuration) Validate() error {
	var err error
	d := c.Dimensions
	dims := []struct {
		name string
		v    float64
	}{{"width", d.Width}, {"height", d.Height}, {"depth", d.Depth}}
	for _, dim := range dims {
		if math.IsNaN(dim.v) || dim.v <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s must be positive, got %g", dim.name, dim.v))
		}
	}
	o := c.Options
	if o.ShelfCount < 0 {
		err = multierr.Append(err, fmt.Errorf("shelf count must not be negative, got %d", o.ShelfCount))
	}
	if o.ColumnCount < 0 {
		err = multierr.Append(err, fmt.Errorf("column count must not be negative, got %d", o.ColumnCount))
	}
	if max := MaxColumns(d.Width); o.ColumnCount > max {
		err = multierr.Append(err, fmt.Errorf("column count %d exceeds maximum %d for width %gcm", o.ColumnCount, max, d.Width))
	}
	if n := o.ColumnCount + 1; len(o.CompartmentDoors) != n {
		err = multierr.Append(err, fmt.Errorf("expected %d compartment doors, got %d", n, len(o.CompartmentDoors)))
	}
	for i, cd := range o.CompartmentDoors {
		if !cd.Type.Valid() {
			err = multierr.Append(err, fmt.Errorf("compartment %d: unknown door type %q", i, cd.Type))
		}
	}
	if o.DoorConfig != DoorsOne && o.DoorConfig != DoorsTwo {
		err = multierr.Append(err, fmt.Errorf("unknown door config %q", o.DoorConfig))
	}
	if o.DoorDirection != HingeLeft && o.DoorDirection != HingeRight {
		err = multierr.Append(err, fmt.Errorf("unknown door direction %q", o.DoorDirection))
	}
	if !c.Type.Known() {
		err = multierr.Append(err, fmt.Errorf("unknown furniture type %q", c.Type))
	}
	return err
}
