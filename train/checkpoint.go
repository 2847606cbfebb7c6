/*
 * checkpoint.go, part of graddft.
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

package train

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Augus1999/GradDFT/functional"
	"github.com/klauspost/compress/zstd"
)

// Checkpoint is everything needed to resume a training run: the model
// parameters, the optimizer state and the step count at which it was
// taken.
type Checkpoint struct {
	Functional string             `json:"functional"`
	Step       int                `json:"step"`
	Params     *functional.Params `json:"params"`
	Optimizer  *AdamState         `json:"optimizer,omitempty"`
}

// SaveCheckpoint writes the checkpoint to path as zstd-compressed JSON.
func SaveCheckpoint(path string, ck *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	if err := json.NewEncoder(zw).Encode(ck); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// LoadCheckpoint reads a checkpoint written by SaveCheckpoint.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	ck := new(Checkpoint)
	if err := json.NewDecoder(zr).Decode(ck); err != nil {
		return nil, fmt.Errorf("train: reading checkpoint %s: %w", path, err)
	}
	if ck.Params == nil {
		return nil, fmt.Errorf("train: checkpoint %s carries no parameters", path)
	}
	return ck, nil
}
