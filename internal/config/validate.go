package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for name, t := range c.Transforms {
		for _, inputName := range t.Inputs {
			if inputName == name {
				return fmt.Errorf("transform [%s]: cannot use itself as input", name)
			}
			if !c.componentExists(inputName) {
				return fmt.Errorf("transform [%s]: refers to unknown input '%s'", name, inputName)
			}
		}
	}

	for _, inputName := range c.Sink.Inputs {
		if !c.componentExists(inputName) {
			return fmt.Errorf("sink: refers to unknown input '%s'", inputName)
		}
	}

	if _, err := c.TransformOrder(); err != nil {
		return err
	}

	return nil
}

func (c *Config) componentExists(name string) bool {
	_, existsInSources := c.Sources[name]
	_, existsInTransforms := c.Transforms[name]
	return existsInSources || existsInTransforms
}
