package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-ini/ini"
	"github.com/juju/errors"
	goversion "github.com/mcuadros/go-version"

	"github.com/phytec-labs/elements/env"
	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/log"
	"github.com/phytec-labs/elements/util"
)

// LocalConfigFileName is the optional fallback configuration in the SDK base.
const LocalConfigFileName = "env.ini"

// MinZephyrSDKVersion is the oldest Zephyr SDK the firmware builds are known to work with.
const MinZephyrSDKVersion = "0.11.0"

const (
	keyZephyrSDKVersion = "zephyr_sdk_version"
	keyVivadoPath       = "vivado_path"
	keyPdkBase          = "pdk_base"
)

// RequiredKeys must be resolvable from the environment or the local configuration.
var RequiredKeys = []string{keyZephyrSDKVersion, keyVivadoPath, keyPdkBase}

var sdkVersionRegexp = regexp.MustCompile(`^\d+(\.\d+){0,3}$`)

// Resolver assembles the environment used by every delegated invocation.
type Resolver struct {
	// Base is the SDK base directory.
	Base string
	// Ambient is the process environment, as returned by os.Environ.
	Ambient []string
}

// NewResolver returns a Resolver for the SDK in base and the current process environment.
func NewResolver(base string) *Resolver {
	return &Resolver{Base: base, Ambient: os.Environ()}
}

func (r *Resolver) readLocal() (map[string]string, error) {
	localPath := filepath.Join(r.Base, LocalConfigFileName)
	if !util.FileExists(localPath) {
		log.Debug("No %s found in '%s'.\n", LocalConfigFileName, r.Base)
		return map[string]string{}, nil
	}
	cfg, err := ini.Load(localPath)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to read %s", localPath)
	}
	log.Debug("Loaded local configuration from '%s'.\n", localPath)

	// Keys may sit above any header or under an explicit [DEFAULT] header.
	values := map[string]string{}
	for _, section := range cfg.Sections() {
		if !strings.EqualFold(section.Name(), ini.DefaultSection) {
			continue
		}
		for key, value := range section.KeysHash() {
			values[strings.ToLower(key)] = value
		}
	}
	return values, nil
}

func lookup(ambient env.Environment, local map[string]string, key string) (string, error) {
	if value, ok := ambient.Lookup(key); ok {
		return value, nil
	}
	if value, ok := ambient.Lookup(strings.ToUpper(key)); ok {
		return value, nil
	}
	if value, ok := local[key]; ok {
		return value, nil
	}
	return "", &failure.ConfigError{Key: key}
}

func searchPath(parts ...string) string {
	nonEmpty := []string{}
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, string(os.PathListSeparator))
}

// Resolve merges the ambient environment with the local configuration file
// and derives the SDK and toolchain locations. Ambient values take precedence.
func (r *Resolver) Resolve() (env.Environment, error) {
	ambient := env.FromList(r.Ambient)
	local, err := r.readLocal()
	if err != nil {
		return env.Environment{}, errors.Trace(err)
	}

	values := map[string]string{}
	for _, key := range RequiredKeys {
		value, err := lookup(ambient, local, key)
		if err != nil {
			return env.Environment{}, errors.Trace(err)
		}
		values[key] = value
	}

	sdkVersion := values[keyZephyrSDKVersion]
	if !sdkVersionRegexp.MatchString(sdkVersion) {
		return env.Environment{}, &failure.ConfigError{Key: keyZephyrSDKVersion, Reason: "is not a version: " + sdkVersion}
	}
	if !goversion.Compare(goversion.Normalize(sdkVersion), goversion.Normalize(MinZephyrSDKVersion), ">=") {
		return env.Environment{}, &failure.ConfigError{
			Key:    keyZephyrSDKVersion,
			Reason: "must be at least " + MinZephyrSDKVersion + ", got " + sdkVersion,
		}
	}

	base := r.Base
	vivadoPath := values[keyVivadoPath]
	pdkBase := values[keyPdkBase]

	resolved := ambient.
		With("ELEMENTS_BASE", base).
		With("ZEPHYR_TOOLCHAIN_VARIANT", "zephyr").
		With("ZEPHYR_SDK_VERSION", sdkVersion).
		With("ZEPHYR_SDK_INSTALL_DIR", filepath.Join(base, "zephyr-sdk-"+sdkVersion)).
		With("FPGA_FAM", "xc7").
		With("INSTALL_DIR", filepath.Join(base, "symbiflow")).
		With("PATH", searchPath(
			filepath.Join(base, "cmake/bin"),
			ambient.Get("PATH"),
			vivadoPath,
			filepath.Join(base, "symbiflow/xc7/install/bin"),
		)).
		With("VIVADO_PATH", vivadoPath).
		With("PDK_BASE", pdkBase).
		With("IHP_TECH", filepath.Join(pdkBase, "tech"))

	log.Debug("Resolved environment with %d variables.\n", resolved.Len())
	return resolved, nil
}
