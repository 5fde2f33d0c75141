package config

import (
	"fmt"
	"reflect"

	"github.com/BurntSushi/toml"

	sdkmath "cosmossdk.io/math"

	infmath "github.com/margined-protocol/infinity-core/pkg/math"
)

// SdkInt is a TOML/mapstructure-friendly wrapper around sdkmath.Int, adapted
// from the teacher's identically named types.SdkInt: amounts in TOML are
// always written as quoted decimal strings so they survive round-tripping
// through a 128-bit-plus integer without float precision loss.
type SdkInt struct {
	Value sdkmath.Int
}

func (s *SdkInt) UnmarshalTOML(data []byte) error {
	var str string
	if err := toml.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to unmarshal SdkInt: %w", err)
	}
	return s.fromString(str)
}

func (s *SdkInt) UnmarshalText(text []byte) error {
	return s.fromString(string(text))
}

func (s SdkInt) MarshalText() ([]byte, error) {
	return []byte(s.Value.String()), nil
}

func (s *SdkInt) fromString(str string) error {
	v, ok := sdkmath.NewIntFromString(str)
	if !ok {
		return fmt.Errorf("invalid SdkInt value: %s", str)
	}
	s.Value = v
	return nil
}

// Percent is the TOML-side equivalent of math.Percent: a quoted decimal
// string ("0.025" for 2.5%) unmarshalled into the fixed-point type the
// curve/quote packages expect.
type Percent struct {
	Value infmath.Percent
}

func (p *Percent) UnmarshalTOML(data []byte) error {
	var str string
	if err := toml.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to unmarshal Percent: %w", err)
	}
	return p.fromString(str)
}

func (p *Percent) UnmarshalText(text []byte) error {
	return p.fromString(string(text))
}

func (p Percent) MarshalText() ([]byte, error) {
	return []byte(p.Value.String()), nil
}

func (p *Percent) fromString(str string) error {
	v, err := infmath.NewPercentFromString(str)
	if err != nil {
		return err
	}
	p.Value = v
	return nil
}

// SdkIntDecodeHook lets mapstructure.Decode convert plain strings into SdkInt
// when decoding a loosely-typed map (e.g. parsed JSON) into a typed struct.
func SdkIntDecodeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(SdkInt{}) {
		return data, nil
	}
	str, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("expected string for SdkInt, got %T", data)
	}
	var s SdkInt
	if err := s.fromString(str); err != nil {
		return nil, err
	}
	return s, nil
}
