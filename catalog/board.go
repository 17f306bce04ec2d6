package catalog

import (
	"sort"

	"github.com/phytec-labs/elements/failure"
)

const transportKey = "transport"

// XilinxBlock describes the FPGA a board carries.
type XilinxBlock struct {
	Part   string `yaml:"part"`
	Device string `yaml:"device"`
}

// CadenceBlock describes the ASIC process a board is built for.
type CadenceBlock struct {
	Process string `yaml:"process"`
	Pdk     string `yaml:"pdk"`
}

// Board is a board descriptor. Every block is optional, but a declared block
// is complete: LoadBoard rejects blocks with missing keys.
type Board struct {
	Name string `yaml:"-"`

	Xilinx  *XilinxBlock `yaml:"xilinx"`
	Cadence *CadenceBlock `yaml:"cadence"`
	// FlashBridge maps flash destinations to openocd bridge configurations,
	// plus the "transport" entry.
	FlashBridge map[string]string `yaml:"flash_bridge"`
	Firmwares   []string          `yaml:"firmwares"`
}

func missingKey(key, block string) error {
	return failure.Validationf("No '%s' defined in board %s tree.", key, block)
}

func (b *Board) validate() error {
	if b.Xilinx != nil {
		if b.Xilinx.Part == "" {
			return missingKey("part", "xilinx")
		}
		if b.Xilinx.Device == "" {
			return missingKey("device", "xilinx")
		}
	}
	if b.Cadence != nil {
		if b.Cadence.Process == "" {
			return missingKey("process", "cadence")
		}
		if b.Cadence.Pdk == "" {
			return missingKey("pdk", "cadence")
		}
	}
	if b.FlashBridge != nil {
		if _, ok := b.FlashBridge[transportKey]; !ok {
			return missingKey(transportKey, "flash bridge")
		}
	}
	return nil
}

func (b *Board) HasXilinx() bool {
	return b.Xilinx != nil
}

func (b *Board) HasCadence() bool {
	return b.Cadence != nil
}

func (b *Board) HasFlashBridge() bool {
	return b.FlashBridge != nil
}

// Destination returns the bridge configuration used to flash to destination.
func (b *Board) Destination(destination string) (string, bool) {
	if destination == transportKey {
		return "", false
	}
	bridge, ok := b.FlashBridge[destination]
	return bridge, ok
}

// Destinations lists the flash destinations of the board.
func (b *Board) Destinations() []string {
	destinations := []string{}
	for destination := range b.FlashBridge {
		if destination != transportKey {
			destinations = append(destinations, destination)
		}
	}
	sort.Strings(destinations)
	return destinations
}

// Transport is the debug adapter transport of the flash bridge.
func (b *Board) Transport() string {
	return b.FlashBridge[transportKey]
}
