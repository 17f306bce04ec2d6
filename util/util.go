package util

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// DirMode is the default FileMode used when creating directories.
const DirMode = 0755

// BaseEnvVar overrides the discovery of the SDK base directory.
const BaseEnvVar = "ELEMENTS_BASE"

// SocsDir is the directory, relative to the SDK base, holding the SOC declarations.
const SocsDir = "zibal/eda/socs"

// BoardsDir is the directory, relative to the SDK base, holding the board declarations.
const BoardsDir = "zibal/eda/boards"

// BuildDirName is the directory all target workspaces live in.
const BuildDirName = "build"

// FileExists checks whether some file exists.
func FileExists(file string) bool {
	stat, err := os.Stat(file)
	return err == nil && !stat.IsDir()
}

// DirExists checks whether some directory exists.
func DirExists(dir string) bool {
	stat, err := os.Stat(dir)
	return err == nil && stat.IsDir()
}

// RemoveGlob removes all files matching pattern and returns their number.
func RemoveGlob(pattern string) (int, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return 0, err
		}
	}
	return len(matches), nil
}

func getSdkBase(p string) (string, error) {
	for {
		if DirExists(path.Join(p, SocsDir)) {
			return p, nil
		}
		if p == "/" {
			return "", fmt.Errorf("not inside an elements SDK (no %s directory found)", SocsDir)
		}
		p = path.Dir(p)
	}
}

// GetSdkBase returns the root directory of the SDK, either from the
// environment or by walking up from the current working directory.
func GetSdkBase() (string, error) {
	if base, ok := os.LookupEnv(BaseEnvVar); ok && base != "" {
		return filepath.Abs(base)
	}
	workingDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return getSdkBase(workingDir)
}

func getInitBase(p string) string {
	if base, err := getSdkBase(p); err == nil {
		return base
	}
	return p
}

// GetInitBase returns the directory an SDK is initialised in. A fresh
// checkout has no SOC declarations yet, so outside an existing SDK this is
// the working directory.
func GetInitBase() (string, error) {
	if base, ok := os.LookupEnv(BaseEnvVar); ok && base != "" {
		return filepath.Abs(base)
	}
	workingDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return getInitBase(workingDir), nil
}
