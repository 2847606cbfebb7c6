/*
 * train.go, part of graddft.
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
	"fmt"
	"math"
	"math/rand"
	"path/filepath"

	graddft "github.com/Augus1999/GradDFT"
	"github.com/Augus1999/GradDFT/functional"
	"go.uber.org/zap"
)

// Options configures a training run.
type Options struct {
	Epochs          int
	LearningRate    float64
	Seed            int64  //shuffling seed
	CheckpointDir   string //empty disables checkpointing
	CheckpointEvery int    //epochs between checkpoints; 0 means every epoch
	Logger          *zap.Logger
}

// DefaultOptions returns the settings of the dissociation-curve example:
// 50 epochs of Adam at 1e-3.
func DefaultOptions() *Options {
	return &Options{
		Epochs:       50,
		LearningRate: 1e-3,
		Seed:         42,
	}
}

// Record holds the per-epoch metrics of a training run. Cost is the mean
// squared energy error in Hartree^2; MAE is in Hartree.
type Record struct {
	Epoch int
	Cost  float64
	MAE   float64
}

// Trainer drives stochastic training of a learned functional over
// molecules with reference energies and reactions with reference reaction
// energies. Either slice may be empty, not both.
type Trainer struct {
	F         *functional.Functional
	Molecules []*graddft.Molecule
	Reactions []*graddft.Reaction
	Opt       *Adam
}

// NewTrainer wires a trainer. The functional's coefficient model must be
// trainable.
func NewTrainer(f *functional.Functional, mols []*graddft.Molecule, reactions []*graddft.Reaction, lr float64) (*Trainer, error) {
	if _, ok := f.Model.(functional.Trainable); !ok {
		return nil, fmt.Errorf("train: functional %s has no trainable parameters", f.Name())
	}
	if len(mols) == 0 && len(reactions) == 0 {
		return nil, fmt.Errorf("train: no training data")
	}
	return &Trainer{F: f, Molecules: mols, Reactions: reactions, Opt: NewAdam(lr)}, nil
}

// Run performs opt.Epochs epochs of per-sample Adam updates in shuffled
// order and returns one Record per epoch. With a checkpoint directory set
// it writes ckpt_NNN.json.zst files as it goes.
func (t *Trainer) Run(opt *Options) ([]Record, error) {
	if opt == nil {
		opt = DefaultOptions()
	}
	model := t.F.Model.(functional.Trainable)
	if t.Opt == nil {
		t.Opt = NewAdam(opt.LearningRate)
	}
	n := len(t.Molecules) + len(t.Reactions)
	rng := rand.New(rand.NewSource(opt.Seed))
	records := make([]Record, 0, opt.Epochs)
	for epoch := 1; epoch <= opt.Epochs; epoch++ {
		order := rng.Perm(n)
		cost := 0.0
		mae := 0.0
		for _, i := range order {
			var loss float64
			var grad *functional.Params
			var err error
			if i < len(t.Molecules) {
				loss, grad, err = EnergyLoss(t.Molecules[i], t.F)
			} else {
				loss, grad, err = ReactionLoss(t.Reactions[i-len(t.Molecules)], t.F)
			}
			if err != nil {
				return records, err
			}
			t.Opt.Step(model.Params(), grad)
			cost += loss
			mae += math.Sqrt(loss)
		}
		rec := Record{Epoch: epoch, Cost: cost / float64(n), MAE: mae / float64(n)}
		records = append(records, rec)
		if opt.Logger != nil {
			opt.Logger.Info("epoch done",
				zap.Int("epoch", epoch),
				zap.Float64("cost", rec.Cost),
				zap.Float64("mae_kcalmol", rec.MAE*graddft.Hartree2kcalmol))
		}
		if opt.CheckpointDir != "" && (opt.CheckpointEvery <= 1 || epoch%opt.CheckpointEvery == 0 || epoch == opt.Epochs) {
			path := filepath.Join(opt.CheckpointDir, fmt.Sprintf("ckpt_%03d.json.zst", epoch))
			ck := &Checkpoint{
				Functional: t.F.Name(),
				Step:       epoch,
				Params:     model.Params().Clone(),
				Optimizer:  t.Opt.State(),
			}
			if err := SaveCheckpoint(path, ck); err != nil {
				return records, err
			}
		}
	}
	return records, nil
}

// RestoreInto loads a checkpoint into the functional's model and, when the
// trainer is given, its optimizer.
func RestoreInto(path string, f *functional.Functional, t *Trainer) (*Checkpoint, error) {
	model, ok := f.Model.(functional.Trainable)
	if !ok {
		return nil, fmt.Errorf("train: functional %s has no trainable parameters", f.Name())
	}
	ck, err := LoadCheckpoint(path)
	if err != nil {
		return nil, err
	}
	model.SetParams(ck.Params)
	if t != nil {
		if err := t.Opt.Restore(ck.Optimizer); err != nil {
			return nil, err
		}
	}
	return ck, nil
}
