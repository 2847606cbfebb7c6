/*
 * cmd_import.go, part of graddft.
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

package main

import (
	"fmt"

	graddft "github.com/Augus1999/GradDFT"
	"github.com/Augus1999/GradDFT/dataset"
	"github.com/Augus1999/GradDFT/pyscf"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importOut         string
	importAtomization bool
)

var importCmd = &cobra.Command{
	Use:   "import archive...",
	Short: "Bundle exported mean-field archives into a dataset",
	Long: `import reads JSON archives produced by the external exporter (see the
PYSCF_CONFIG_FILE configuration) and writes them as a single
zstd-compressed dataset. With --atomization, single-atom archives are
treated as the isolated-atom references and one atomization reaction is
built per remaining molecule.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", "dataset.json.zst", "output dataset")
	importCmd.Flags().BoolVar(&importAtomization, "atomization", false, "build atomization reactions from single-atom archives")
}

func runImport(cmd *cobra.Command, args []string) error {
	ds := new(dataset.Dataset)
	atoms := make(map[int]*graddft.Molecule)
	var polyatomic []*graddft.Molecule
	for _, path := range args {
		m, err := pyscf.MoleculeFromArchive(path)
		if err != nil {
			return err
		}
		logger.Info("imported archive",
			zap.String("path", path),
			zap.String("name", m.Name),
			zap.Int("nao", m.NAO()),
			zap.Int("grid_points", m.NGrid()))
		ds.Molecules = append(ds.Molecules, m)
		if len(m.AtomNumbers) == 1 {
			atoms[m.AtomNumbers[0]] = m
		} else {
			polyatomic = append(polyatomic, m)
		}
	}
	if importAtomization {
		reactions, err := dataset.AtomizationReactions(polyatomic, atoms)
		if err != nil {
			return err
		}
		ds.Reactions = reactions
	}
	if err := dataset.Save(importOut, ds); err != nil {
		return err
	}
	fmt.Printf("wrote %d molecules and %d reactions to %s\n", len(ds.Molecules), len(ds.Reactions), importOut)
	return nil
}
