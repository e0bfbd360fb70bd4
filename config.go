package main

import (
	"encoding/json"
	"errors"
	"os"

	. "github.com/ttpr0/isochrone-core/util"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) Config {
	slog.Info("Reading config file")
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file: " + err.Error())
		panic(err)
	}
	var config Config
	yaml.Unmarshal(data, &config)
	return config
}

type Config struct {
	Graphs   SourceOptions                 `yaml:"graphs"`
	Profiles Dict[string, *ProfileOptions] `yaml:"profiles"`
	Server   ServerOptions                 `yaml:"server"`
}

// SourceOptions points at the tile store the server reads from. Loading,
// decoding and caching those tiles is handled entirely behind
// graph.GraphReader; this service only needs to know where to find them.
type SourceOptions struct {
	TileDir string `yaml:"tile-dir"`
}

type ServerOptions struct {
	Address string `yaml:"address"`
}

//**********************************************************
// profile options
//**********************************************************

// ProfileOptions wraps one costing profile's options, dispatched by its
// "type" field the same way the reference profile config does.
type ProfileOptions struct {
	Value ICostingOptions
}

func (self *ProfileOptions) UnmarshalYAML(value *yaml.Node) error {
	m := map[string]interface{}{}
	if err := value.Decode(&m); err != nil {
		return err
	}
	typ, err := ProfileTypeFromString(m["type"].(string))
	if err != nil {
		return err
	}
	switch typ {
	case DRIVING:
		val := DrivingOptions{}
		value.Decode(&val)
		self.Value = val
	case WALKING:
		val := WalkingOptions{}
		value.Decode(&val)
		self.Value = val
	case CYCLING:
		val := CyclingOptions{}
		value.Decode(&val)
		self.Value = val
	case TRANSIT:
		val := TransitOptions{}
		value.Decode(&val)
		self.Value = val
	default:
		self.Value = nil
	}
	return nil
}

type ICostingOptions interface {
	Type() ProfileType
}

type DrivingOptions struct {
	TopSpeed float32 `yaml:"top-speed"`
}

func (self DrivingOptions) Type() ProfileType {
	return DRIVING
}

type WalkingOptions struct {
	WalkingSpeed float32 `yaml:"walking-speed"`
}

func (self WalkingOptions) Type() ProfileType {
	return WALKING
}

type CyclingOptions struct {
	CyclingSpeed float32 `yaml:"cycling-speed"`
}

func (self CyclingOptions) Type() ProfileType {
	return CYCLING
}

type TransitOptions struct {
	WalkingSpeed  float32 `yaml:"walking-speed"`
	TransitSpeed  float32 `yaml:"transit-speed"`
	Wheelchair    bool    `yaml:"wheelchair"`
	Bicycle       bool    `yaml:"bicycle"`
}

func (self TransitOptions) Type() ProfileType {
	return TRANSIT
}

//**********************************************************
// enums
//**********************************************************

type ProfileType byte

const (
	DRIVING ProfileType = 0
	WALKING ProfileType = 1
	CYCLING ProfileType = 2
	TRANSIT ProfileType = 3
)

func (self ProfileType) String() string {
	switch self {
	case DRIVING:
		return "driving"
	case WALKING:
		return "walking"
	case CYCLING:
		return "cycling"
	case TRANSIT:
		return "transit"
	default:
		panic("unknown profile type")
	}
}
func (self ProfileType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *ProfileType) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	prof_typ, err := ProfileTypeFromString(typ)
	*self = prof_typ
	return err
}

func ProfileTypeFromString(s string) (ProfileType, error) {
	switch s {
	case "driving":
		return DRIVING, nil
	case "walking":
		return WALKING, nil
	case "cycling":
		return CYCLING, nil
	case "transit":
		return TRANSIT, nil
	default:
		return DRIVING, errors.New("unknown profile type")
	}
}
