package stage

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/phytec-labs/elements/failure"
)

// Backend is the toolchain a hardware stage runs with.
type Backend string

const (
	Xilinx  Backend = "xilinx"
	OSS     Backend = "oss"
	Cadence Backend = "cadence"
)

// Backends lists every toolchain.
var Backends = []Backend{Xilinx, OSS, Cadence}

type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

var Efforts = []Effort{EffortLow, EffortMedium, EffortHigh}

// PlaceStage is the step place and route stops after.
type PlaceStage string

var PlaceStages = []PlaceStage{"init", "floorplan", "place", "cts", "route", "signoff", "verify", "save"}

// Destination is where flash writes to.
type Destination string

const (
	DestinationFPGA   Destination = "fpga"
	DestinationSPI    Destination = "spi"
	DestinationMemory Destination = "memory"
)

var Destinations = []Destination{DestinationFPGA, DestinationSPI, DestinationMemory}

// Source selects the netlist a simulation runs on.
type Source string

const (
	SourceGenerated   Source = "generated"
	SourceSynthesized Source = "synthesized"
)

var Sources = []Source{SourceGenerated, SourceSynthesized}

// FirmwareKind is what compile builds.
type FirmwareKind string

const (
	Bootrom    FirmwareKind = "bootrom"
	Zephyr     FirmwareKind = "zephyr"
	Menuconfig FirmwareKind = "menuconfig"
)

var FirmwareKinds = []FirmwareKind{Bootrom, Zephyr, Menuconfig}

func joinChoices[T ~string](choices []T) string {
	names := make([]string, 0, len(choices))
	for _, choice := range choices {
		names = append(names, string(choice))
	}
	return strings.Join(names, ", ")
}

func parseChoice[T ~string](what, value string, choices []T) (T, error) {
	for _, choice := range choices {
		if string(choice) == value {
			return choice, nil
		}
	}
	return "", failure.Validationf("Invalid %s '%s' (choose from %s)", what, value, joinChoices(choices))
}

func setChoice[T ~string](target *T, what, value string, choices []T) error {
	choice, err := parseChoice(what, value, choices)
	if err != nil {
		return err
	}
	*target = choice
	return nil
}

// ParseFirmwareKind validates a firmware type given on the command line.
func ParseFirmwareKind(value string) (FirmwareKind, error) {
	return parseChoice("firmware type", value, FirmwareKinds)
}

func (b *Backend) String() string { return string(*b) }
func (b *Backend) Type() string   { return "toolchain" }
func (b *Backend) Set(value string) error {
	return setChoice(b, "toolchain", value, Backends)
}

func (e *Effort) String() string { return string(*e) }
func (e *Effort) Type() string   { return "effort" }
func (e *Effort) Set(value string) error {
	return setChoice(e, "effort", value, Efforts)
}

func (s *PlaceStage) String() string { return string(*s) }
func (s *PlaceStage) Type() string   { return "stage" }
func (s *PlaceStage) Set(value string) error {
	return setChoice(s, "stage", value, PlaceStages)
}

func (d *Destination) String() string { return string(*d) }
func (d *Destination) Type() string   { return "destination" }
func (d *Destination) Set(value string) error {
	return setChoice(d, "destination", value, Destinations)
}

func (s *Source) String() string { return string(*s) }
func (s *Source) Type() string   { return "source" }
func (s *Source) Set(value string) error {
	return setChoice(s, "source", value, Sources)
}

var (
	_ pflag.Value = (*Backend)(nil)
	_ pflag.Value = (*Effort)(nil)
	_ pflag.Value = (*PlaceStage)(nil)
	_ pflag.Value = (*Destination)(nil)
	_ pflag.Value = (*Source)(nil)
)
