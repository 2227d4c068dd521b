// Package worldfile loads and saves blocks-world scenarios. The on-disk
// source format is TOML (decoded with BurntSushi/toml, the same library the
// original engine used for its world definition files); a REZI-encoded
// binary cache of the decoded worldmodel.Snapshot can be written alongside
// it so a scenario store does not need to re-parse TOML on every read.
package worldfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/rezi"

	"github.com/shrdlite/planner/internal/worldmodel"
)

// fileManifest is the common header every scenario file carries, mirroring
// the format/type pair the original engine's world files used to identify
// themselves.
type fileManifest struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

const (
	scenarioFormat = "shrdlite-scenario"
	scenarioType   = "DATA"
)

type tomlObject struct {
	ID    string `toml:"id"`
	Form  string `toml:"form"`
	Size  string `toml:"size"`
	Color string `toml:"color"`
}

type tomlScenario struct {
	Format  string       `toml:"format"`
	Type    string       `toml:"type"`
	Arm     int          `toml:"arm"`
	Holding string       `toml:"holding"`
	Stacks  [][]string   `toml:"stacks"`
	Objects []tomlObject `toml:"object"`
}

// Load reads a TOML scenario file from path and decodes it into a
// worldmodel.Snapshot, validating it before returning.
func Load(path string) (worldmodel.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return worldmodel.Snapshot{}, fmt.Errorf("worldfile: read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses TOML scenario bytes into a worldmodel.Snapshot.
func Decode(data []byte) (worldmodel.Snapshot, error) {
	var manifest fileManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return worldmodel.Snapshot{}, fmt.Errorf("worldfile: decode header: %w", err)
	}
	if manifest.Type != "" && manifest.Type != scenarioType {
		return worldmodel.Snapshot{}, fmt.Errorf("worldfile: unsupported file type %q", manifest.Type)
	}

	var ts tomlScenario
	if _, err := toml.Decode(string(data), &ts); err != nil {
		return worldmodel.Snapshot{}, fmt.Errorf("worldfile: decode scenario: %w", err)
	}

	snap := worldmodel.Snapshot{
		Stacks:  ts.Stacks,
		Holding: strings.ToLower(ts.Holding),
		Arm:     ts.Arm,
		Objects: make(worldmodel.Objects, len(ts.Objects)),
	}
	for _, o := range ts.Objects {
		snap.Objects[o.ID] = worldmodel.Object{
			Form:  worldmodel.Form(strings.ToLower(o.Form)),
			Size:  worldmodel.Size(strings.ToLower(o.Size)),
			Color: strings.ToLower(o.Color),
		}
	}

	if err := snap.Validate(); err != nil {
		return worldmodel.Snapshot{}, fmt.Errorf("worldfile: %w", err)
	}
	return snap, nil
}

// Save writes snap to path as a TOML scenario file.
func Save(path string, snap worldmodel.Snapshot) error {
	ts := tomlScenario{
		Format:  scenarioFormat,
		Type:    scenarioType,
		Arm:     snap.Arm,
		Holding: snap.Holding,
		Stacks:  snap.Stacks,
	}
	for id, obj := range snap.Objects {
		ts.Objects = append(ts.Objects, tomlObject{
			ID:    id,
			Form:  string(obj.Form),
			Size:  string(obj.Size),
			Color: obj.Color,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("worldfile: create %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(ts); err != nil {
		return fmt.Errorf("worldfile: encode %s: %w", path, err)
	}
	return nil
}

// EncodeCache produces a REZI binary encoding of snap, for storage in a
// scenario cache keyed separately from the human-edited TOML source.
func EncodeCache(snap worldmodel.Snapshot) []byte {
	return rezi.EncBinary(snap)
}

// DecodeCache reverses EncodeCache.
func DecodeCache(data []byte) (worldmodel.Snapshot, error) {
	var snap worldmodel.Snapshot
	if _, err := rezi.DecBinary(data, &snap); err != nil {
		return worldmodel.Snapshot{}, fmt.Errorf("worldfile: decode cache: %w", err)
	}
	return snap, nil
}
