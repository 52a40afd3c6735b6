// Package config holds the runtime configuration of rpgmd.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
	"github.com/idelchi/rpgmd/internal/rpgmv"
)

// Config holds the application configuration.
type Config struct {
	// Root is the directory searched for the key file and assets.
	Root string `label:"game directory" validate:"required"`

	// Output is the flat directory receiving all outputs; empty means in place.
	Output string

	// Key overrides key discovery with a hex encoded key.
	Key string `label:"--key" validate:"omitempty,hexadecimal,len=32"`

	// Parallel is the number of assets processed concurrently.
	Parallel int `label:"--parallel" validate:"min=1"`

	// Quiet suppresses progress output.
	Quiet bool

	// ShowKey prints the hex key in use, even when quiet.
	ShowKey bool `mapstructure:"show-key"`

	// Stats prints a summary after processing.
	Stats bool

	// Dry previews the planned outputs without writing.
	Dry bool `label:"--dry" validate:"exclusive=Delete"`

	// Delete removes each input after its output was written.
	Delete bool

	// FailFast stops scheduling new assets after the first failure.
	FailFast bool `mapstructure:"fail-fast"`

	// VerifyHeader rejects assets whose fake header is not the RPGMV signature.
	VerifyHeader bool `mapstructure:"verify-header"`

	// PreserveTimestamps copies the input modification time to the output.
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Include and Exclude filter discovered assets using find -path patterns.
	Include []string
	Exclude []string

	// ExcludeFrom is a JSONC file with additional exclude patterns.
	ExcludeFrom string `mapstructure:"exclude-from"`

	// Encrypt selects the inverse transform.
	Encrypt bool `mapstructure:"-"`
}

// InPlace reports whether outputs are written next to their inputs.
func (c *Config) InPlace() bool {
	return c.Output == ""
}

// Classifier returns the extension mapping used for asset discovery.
func (c *Config) Classifier() rpgmv.Classifier {
	if c.Encrypt {
		return rpgmv.KindOfPlain
	}

	return rpgmv.KindOfEncrypted
}

// TargetExt returns the extension written for an asset of the given kind.
func (c *Config) TargetExt(kind rpgmv.Kind) string {
	if c.Encrypt {
		return kind.EncryptedExt()
	}

	return kind.PlainExt()
}

// ErrInvalid is returned when the configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Validate validates the configuration against the struct tags.
func (c *Config) Validate() error {
	validate := validator.NewValidator()

	if err := registerExclusive(validate); err != nil {
		return err
	}

	if err := validate.Validator().Struct(c); err != nil {
		errs := validate.FormatErrors(err)
		msgs := make([]string, 0, len(errs))

		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}

		return fmt.Errorf("%w:\n  %s", ErrInvalid, strings.Join(msgs, "\n  "))
	}

	if c.Key != "" {
		if _, err := rpgmv.ParseKey(c.Key); err != nil {
			return fmt.Errorf("%w: --key: %w", ErrInvalid, err)
		}
	}

	return nil
}
