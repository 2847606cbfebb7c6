/*
 * cmd_predict.go, part of graddft.
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
	"math"

	graddft "github.com/Augus1999/GradDFT"
	"github.com/Augus1999/GradDFT/dataset"
	"github.com/Augus1999/GradDFT/functional"
	"github.com/Augus1999/GradDFT/train"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	predictData  string
	predictCkpt  string
	predictWidth int
	predictDepth int
	predictSCF   bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Evaluate a functional on a dataset",
	Long: `predict evaluates total energies over a dataset, by default at the
stored converged densities. Without a checkpoint it uses LSDA; with one it
rebuilds the neural functional the checkpoint was trained for. --scf
re-converges each density self-consistently first, which needs archives
that carry the repulsion tensor.`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVarP(&predictData, "dataset", "d", "dataset.json.zst", "dataset to evaluate")
	predictCmd.Flags().StringVar(&predictCkpt, "checkpoint", "", "trained-functional checkpoint")
	predictCmd.Flags().IntVar(&predictWidth, "width", 32, "hidden width of the coefficient network")
	predictCmd.Flags().IntVar(&predictDepth, "depth", 2, "residual blocks of the coefficient network")
	predictCmd.Flags().BoolVar(&predictSCF, "scf", false, "re-converge each density self-consistently")
}

func runPredict(cmd *cobra.Command, args []string) error {
	ds, err := dataset.Load(predictData)
	if err != nil {
		return err
	}
	var f *functional.Functional
	if predictCkpt == "" {
		f = functional.LSDA()
	} else {
		f = functional.NewNeural(predictWidth, predictDepth, 0)
		if _, err := train.RestoreInto(predictCkpt, f, nil); err != nil {
			return err
		}
	}
	var mae float64
	var nref int
	for _, m := range ds.Molecules {
		var e float64
		if predictSCF {
			res, err := graddft.SCFDIIS(m, f, nil)
			if err != nil {
				if gerr, ok := err.(graddft.Error); !ok || gerr.Critical() {
					return err
				}
				logger.Warn("SCF not converged", zap.String("name", m.Name), zap.Error(err))
			}
			e = res.Energy
		} else {
			if e, err = graddft.PredictEnergy(m, f); err != nil {
				return err
			}
		}
		if m.HasEnergy() {
			mae += math.Abs(e - m.Energy)
			nref++
			fmt.Printf("%-20s %16.8f Ha (reference %16.8f)\n", m.Name, e, m.Energy)
		} else {
			fmt.Printf("%-20s %16.8f Ha\n", m.Name, e)
		}
	}
	for _, r := range ds.Reactions {
		e, err := graddft.PredictReactionEnergy(r, f)
		if err != nil {
			return err
		}
		fmt.Printf("%-20s %10.3f kcal/mol (reference %10.3f)\n",
			r.Name, e*graddft.Hartree2kcalmol, r.Energy*graddft.Hartree2kcalmol)
	}
	if nref > 0 {
		fmt.Printf("MAE over %d references: %.3f kcal/mol\n", nref, mae/float64(nref)*graddft.Hartree2kcalmol)
	}
	return nil
}
