/*
 * store.go, part of graddft.
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

//Package dataset stores collections of molecules and reactions as
//zstd-compressed JSON, and prepares them for training: labeling,
//noise, dissociation curves and atomization reactions.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	graddft "github.com/Augus1999/GradDFT"
	"github.com/klauspost/compress/zstd"
)

// Dataset is a collection of molecules with, optionally, reactions among
// them. Reaction members must be molecules of the same dataset; the store
// serializes them by index.
type Dataset struct {
	Molecules []*graddft.Molecule
	Reactions []*graddft.Reaction
}

//reactionJSON references molecules by their position in the dataset.
type reactionJSON struct {
	Name            string  `json:"name"`
	Reactants       []int   `json:"reactants"`
	Products        []int   `json:"products"`
	ReactantNumbers []int   `json:"reactant_numbers"`
	ProductNumbers  []int   `json:"product_numbers"`
	Energy          float64 `json:"energy"`
}

type datasetJSON struct {
	Molecules []*moleculeJSON `json:"molecules"`
	Reactions []reactionJSON  `json:"reactions,omitempty"`
}

// Save writes the dataset to path as zstd-compressed JSON. The
// conventional extension is .json.zst.
func Save(path string, ds *Dataset) error {
	index := make(map[*graddft.Molecule]int, len(ds.Molecules))
	j := &datasetJSON{}
	for i, m := range ds.Molecules {
		index[m] = i
		j.Molecules = append(j.Molecules, encodeMolecule(m))
	}
	for _, r := range ds.Reactions {
		rj := reactionJSON{
			Name:            r.Name,
			ReactantNumbers: r.ReactantNumbers,
			ProductNumbers:  r.ProductNumbers,
			Energy:          r.Energy,
		}
		for _, m := range r.Reactants {
			i, ok := index[m]
			if !ok {
				return fmt.Errorf("dataset: reaction %q references a molecule outside the dataset", r.Name)
			}
			rj.Reactants = append(rj.Reactants, i)
		}
		for _, m := range r.Products {
			i, ok := index[m]
			if !ok {
				return fmt.Errorf("dataset: reaction %q references a molecule outside the dataset", r.Name)
			}
			rj.Products = append(rj.Products, i)
		}
		j.Reactions = append(j.Reactions, rj)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	if err := json.NewEncoder(zw).Encode(j); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Load reads a dataset written by Save.
func Load(path string) (*Dataset, error) {
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
	j := new(datasetJSON)
	if err := json.NewDecoder(zr).Decode(j); err != nil {
		return nil, fmt.Errorf("dataset: reading %s: %w", path, err)
	}
	ds := new(Dataset)
	for _, mj := range j.Molecules {
		m, err := decodeMolecule(mj)
		if err != nil {
			return nil, err
		}
		ds.Molecules = append(ds.Molecules, m)
	}
	pick := func(idx []int, name string) ([]*graddft.Molecule, error) {
		out := make([]*graddft.Molecule, len(idx))
		for k, i := range idx {
			if i < 0 || i >= len(ds.Molecules) {
				return nil, fmt.Errorf("dataset: reaction %q references molecule %d of %d", name, i, len(ds.Molecules))
			}
			out[k] = ds.Molecules[i]
		}
		return out, nil
	}
	for _, rj := range j.Reactions {
		reac, err := pick(rj.Reactants, rj.Name)
		if err != nil {
			return nil, err
		}
		prod, err := pick(rj.Products, rj.Name)
		if err != nil {
			return nil, err
		}
		r, err := graddft.MakeReaction(reac, prod, rj.ReactantNumbers, rj.ProductNumbers, rj.Energy, rj.Name)
		if err != nil {
			return nil, err
		}
		ds.Reactions = append(ds.Reactions, r)
	}
	return ds, nil
}
