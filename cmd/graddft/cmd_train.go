/*
 * cmd_train.go, part of graddft.
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
	"github.com/Augus1999/GradDFT/functional"
	"github.com/Augus1999/GradDFT/train"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	trainData      string
	trainEpochs    int
	trainLR        float64
	trainWidth     int
	trainDepth     int
	trainSeed      int64
	trainCkptDir   string
	trainCkptEvery int
	trainResume    string
	trainPlot      string
	trainReactions bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a neural functional on a dataset",
	Long: `train fits the coefficient network of a neural functional to the
reference energies of a dataset, by Adam on the squared energy error at
the stored converged densities. With --reactions the reaction energies of
the dataset are fit instead of the absolute molecular energies.`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVarP(&trainData, "dataset", "d", "dataset.json.zst", "training dataset")
	trainCmd.Flags().IntVar(&trainEpochs, "epochs", 50, "training epochs")
	trainCmd.Flags().Float64Var(&trainLR, "lr", 1e-3, "Adam learning rate")
	trainCmd.Flags().IntVar(&trainWidth, "width", 32, "hidden width of the coefficient network")
	trainCmd.Flags().IntVar(&trainDepth, "depth", 2, "residual blocks of the coefficient network")
	trainCmd.Flags().Int64Var(&trainSeed, "seed", 42, "initialization and shuffling seed")
	trainCmd.Flags().StringVar(&trainCkptDir, "ckpt-dir", "", "checkpoint directory (empty disables)")
	trainCmd.Flags().IntVar(&trainCkptEvery, "ckpt-every", 10, "epochs between checkpoints")
	trainCmd.Flags().StringVar(&trainResume, "resume", "", "checkpoint to resume from")
	trainCmd.Flags().StringVar(&trainPlot, "plot", "", "write a loss-curve PNG")
	trainCmd.Flags().BoolVar(&trainReactions, "reactions", false, "fit reaction energies instead of total energies")
}

func runTrain(cmd *cobra.Command, args []string) error {
	ds, err := dataset.Load(trainData)
	if err != nil {
		return err
	}
	f := functional.NewNeural(trainWidth, trainDepth, trainSeed)
	var mols []*graddft.Molecule
	var reactions []*graddft.Reaction
	if trainReactions {
		reactions = ds.Reactions
	} else {
		mols = ds.Molecules
	}
	t, err := train.NewTrainer(f, mols, reactions, trainLR)
	if err != nil {
		return err
	}
	if trainResume != "" {
		ck, err := train.RestoreInto(trainResume, f, t)
		if err != nil {
			return err
		}
		logger.Info("resumed from checkpoint", zap.String("path", trainResume), zap.Int("step", ck.Step))
	}
	records, err := t.Run(&train.Options{
		Epochs:          trainEpochs,
		LearningRate:    trainLR,
		Seed:            trainSeed,
		CheckpointDir:   trainCkptDir,
		CheckpointEvery: trainCkptEvery,
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	if trainPlot != "" {
		if err := train.PlotLoss(records, trainPlot); err != nil {
			return err
		}
	}
	last := records[len(records)-1]
	fmt.Printf("final cost %.3e Ha^2, MAE %.3f kcal/mol\n", last.Cost, last.MAE*graddft.Hartree2kcalmol)
	return nil
}
