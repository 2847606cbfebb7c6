/*
 * config.go, part of graddft.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package pyscf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigEnv names the environment variable pointing at the YAML
// configuration of the external exporter.
const ConfigEnv = "PYSCF_CONFIG_FILE"

// Config holds the settings handed to the Python exporter when archives
// are (re)generated, and the defaults assumed when reading them.
type Config struct {
	//Python interpreter and exporter script
	Python string `yaml:"python"`
	Script string `yaml:"script"`

	Basis     string `yaml:"basis"`
	XC        string `yaml:"xc"`         //mean-field functional used to converge the densities
	GridLevel int    `yaml:"grid_level"` //quadrature grid level of the exporter
	MaxMemory int    `yaml:"max_memory_mb"`
	Scratch   string `yaml:"scratch"`
}

// DefaultConfig returns the settings used when no configuration file is
// present.
func DefaultConfig() *Config {
	return &Config{
		Python:    "python3",
		Basis:     "def2-tzvp",
		XC:        "b3lyp",
		GridLevel: 2,
	}
}

// LoadConfig reads the configuration from path. An empty path falls back
// to the PYSCF_CONFIG_FILE environment variable, and when that is unset
// too the defaults are returned. Settings absent from the file keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("pyscf: parsing configuration %s: %w", path, err)
	}
	return cfg, nil
}
