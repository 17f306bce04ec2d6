package workspace

// Artifact names a file or directory inside a target workspace.
type Artifact int

const (
	HardwareDir Artifact = iota
	Netlist
	HardwareDescription
	CPUDescription
	SimulationDir
	Waveform
	BootromDir
	BootromImage
	FirmwareDir
	FirmwareELF
	FirmwareBoardsDir
	VivadoSimDir
	VivadoSynDir
	VivadoBitstream
	SymbiflowDir
	SymbiflowBitstream
	CadenceSynthesizeDir
	CadenceMapDir
	CadencePlaceDir
	CadenceSimDir
	SynthesizedNetlist
)

var artifactNames = map[Artifact]string{
	HardwareDir:          "hardware directory",
	Netlist:              "generated netlist",
	HardwareDescription:  "hardware description",
	CPUDescription:       "CPU description",
	SimulationDir:        "simulation directory",
	Waveform:             "simulation waveform",
	BootromDir:           "bootrom directory",
	BootromImage:         "bootrom image",
	FirmwareDir:          "firmware directory",
	FirmwareELF:          "firmware ELF",
	FirmwareBoardsDir:    "firmware boards directory",
	VivadoSimDir:         "vivado simulation directory",
	VivadoSynDir:         "vivado synthesis directory",
	VivadoBitstream:      "vivado bitstream",
	SymbiflowDir:         "symbiflow directory",
	SymbiflowBitstream:   "symbiflow bitstream",
	CadenceSynthesizeDir: "cadence synthesis directory",
	CadenceMapDir:        "cadence map directory",
	CadencePlaceDir:      "cadence place directory",
	CadenceSimDir:        "cadence simulation directory",
	SynthesizedNetlist:   "synthesized netlist",
}

func (a Artifact) String() string {
	if name, ok := artifactNames[a]; ok {
		return name
	}
	return "unknown artifact"
}
