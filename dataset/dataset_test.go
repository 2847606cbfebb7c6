/*
 * dataset_test.go, part of graddft.
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

package dataset

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	graddft "github.com/Augus1999/GradDFT"
	"gonum.org/v1/gonum/mat"
)

//testMolecule is the usual one-basis two-electron system, at a given
//internuclear geometry so the dissociation helpers have something to sort.
func testMolecule(name string, atoms []int, dist float64) *graddft.Molecule {
	grid, err := graddft.NewGrid([]float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}, []float64{0.25, 0.25, 0.25, 0.25})
	if err != nil {
		panic(err.Error())
	}
	pos := mat.NewDense(len(atoms), 3, nil)
	if len(atoms) == 2 {
		pos.Set(1, 2, dist)
	}
	rep := graddft.NewRepTensor(1)
	rep.Put(0, 0, 0, 0, 0.6)
	m := &graddft.Molecule{
		Grid:        grid,
		AtomNumbers: atoms,
		NuclearPos:  pos,
		AO:          mat.NewDense(4, 1, []float64{1, 1, 1, 1}),
		H1e:         mat.NewDense(1, 1, []float64{-1.2}),
		VJ:          mat.NewDense(1, 1, []float64{1.2}),
		S1e:         mat.NewDense(1, 1, []float64{1}),
		Rep:         rep,
		ENuc:        1 / math.Max(dist, 1),
		MFEnergy:    -1.8,
		Energy:      math.NaN(),
		Basis:       "toy",
		Name:        name,
		Spin:        0,
		Charge:      0,
	}
	for s := 0; s < 2; s++ {
		m.GradAO[s] = mat.NewDense(4, 1, nil)
		m.RDM1[s] = mat.NewDense(1, 1, []float64{1})
		m.Fock[s] = mat.NewDense(1, 1, []float64{-0.6})
		m.MOCoeff[s] = mat.NewDense(1, 1, []float64{1})
		m.MOOcc[s] = []float64{1}
		m.MOEnergy[s] = []float64{-0.6}
	}
	m.GradAO[2] = mat.NewDense(4, 1, nil)
	return m
}

func TestSaveLoadRoundtrip(Te *testing.T) {
	dir := Te.TempDir()
	path := filepath.Join(dir, "ds.json.zst")
	a := testMolecule("HH-1.4", []int{1, 1}, 1.4)
	a.Energy = -1.17
	b := testMolecule("H", []int{1}, 0)
	b.Energy = -0.5
	r, err := graddft.MakeReaction(
		[]*graddft.Molecule{b}, []*graddft.Molecule{a}, []int{2}, []int{1}, -0.17, "H2 atomization")
	if err != nil {
		Te.Fatal(err)
	}
	ds := &Dataset{Molecules: []*graddft.Molecule{a, b}, Reactions: []*graddft.Reaction{r}}
	if err := Save(path, ds); err != nil {
		Te.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		Te.Fatal(err)
	}
	if len(back.Molecules) != 2 || len(back.Reactions) != 1 {
		Te.Fatal("dataset shape lost:", len(back.Molecules), len(back.Reactions))
	}
	ra := back.Molecules[0]
	if ra.Name != "HH-1.4" || ra.Basis != "toy" || !ra.HasEnergy() || ra.Energy != -1.17 {
		Te.Error("molecule metadata lost")
	}
	if ra.NAO() != 1 || ra.NGrid() != 4 {
		Te.Error("molecule arrays lost")
	}
	if ra.Rep == nil || ra.Rep.Len() != 1 {
		Te.Error("repulsion tensor lost")
	}
	//numerical content must survive bit-exactly: same non-XC energy
	e1, err := a.NonXCEnergy()
	if err != nil {
		Te.Fatal(err)
	}
	e2, err := ra.NonXCEnergy()
	if err != nil {
		Te.Fatal(err)
	}
	if e1 != e2 {
		Te.Error("non-XC energy changed in the roundtrip:", e1, e2)
	}
	//the reaction must point at the restored molecules
	rr := back.Reactions[0]
	if rr.Products[0] != back.Molecules[0] || rr.Reactants[0] != back.Molecules[1] {
		Te.Error("reaction membership lost")
	}
	if rr.Energy != -0.17 || rr.ReactantNumbers[0] != 2 {
		Te.Error("reaction data lost")
	}
	fmt.Println("roundtrip ok:", ra.Name, e2)
}

func TestSaveRejectsForeignReaction(Te *testing.T) {
	dir := Te.TempDir()
	a := testMolecule("a", []int{1}, 0)
	b := testMolecule("b", []int{1}, 0)
	outsider := testMolecule("outsider", []int{1}, 0)
	r, err := graddft.MakeReaction(
		[]*graddft.Molecule{outsider}, []*graddft.Molecule{a}, []int{1}, []int{1}, 0, "bad")
	if err != nil {
		Te.Fatal(err)
	}
	ds := &Dataset{Molecules: []*graddft.Molecule{a, b}, Reactions: []*graddft.Reaction{r}}
	if err := Save(filepath.Join(dir, "bad.json.zst"), ds); err == nil {
		Te.Error("expected an error for a reaction referencing an outside molecule")
	}
}

func TestMissingEnergySurvives(Te *testing.T) {
	dir := Te.TempDir()
	path := filepath.Join(dir, "ds.json.zst")
	m := testMolecule("unlabeled", []int{1}, 0) //Energy stays NaN
	if err := Save(path, &Dataset{Molecules: []*graddft.Molecule{m}}); err != nil {
		Te.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		Te.Fatal(err)
	}
	if back.Molecules[0].HasEnergy() {
		Te.Error("a missing reference energy appeared out of nowhere")
	}
}

func TestBondLength(Te *testing.T) {
	m := testMolecule("HH", []int{1, 1}, 1.4)
	d, err := BondLength(m)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(d-1.4) > 1e-14 {
		Te.Error("bond length:", d)
	}
	if _, err := BondLength(testMolecule("H", []int{1}, 0)); err == nil {
		Te.Error("expected an error for a non-diatomic")
	}
}

func TestDissociationCurve(Te *testing.T) {
	frames := []*graddft.Molecule{
		testMolecule("far", []int{1, 1}, 3.0),
		testMolecule("near", []int{1, 1}, 0.9),
		testMolecule("mid", []int{1, 1}, 1.4),
	}
	sorted, dists, err := DissociationCurve(frames)
	if err != nil {
		Te.Fatal(err)
	}
	if sorted[0].Name != "near" || sorted[1].Name != "mid" || sorted[2].Name != "far" {
		Te.Error("frames not sorted by distance")
	}
	if dists[0] > dists[1] || dists[1] > dists[2] {
		Te.Error("distances not ascending:", dists)
	}
}

func TestLabelWithAndNoise(Te *testing.T) {
	mols := []*graddft.Molecule{
		testMolecule("a", []int{1}, 0),
		testMolecule("b", []int{1}, 0),
	}
	xc := nullFunctional{}
	if err := LabelWith(mols, xc); err != nil {
		Te.Fatal(err)
	}
	for _, m := range mols {
		if !m.HasEnergy() {
			Te.Fatal("labeling left a molecule without energy")
		}
	}
	before := []float64{mols[0].Energy, mols[1].Energy}
	AddNoise(mols, 0.01, 7)
	if mols[0].Energy == before[0] && mols[1].Energy == before[1] {
		Te.Error("noise did not change the energies")
	}
	//same seed, same noise
	mols2 := []*graddft.Molecule{
		testMolecule("a", []int{1}, 0),
		testMolecule("b", []int{1}, 0),
	}
	if err := LabelWith(mols2, xc); err != nil {
		Te.Fatal(err)
	}
	AddNoise(mols2, 0.01, 7)
	if mols2[0].Energy != mols[0].Energy {
		Te.Error("noise is not reproducible from the seed")
	}
}

func TestAtomizationReactions(Te *testing.T) {
	h2 := testMolecule("H2", []int{1, 1}, 1.4)
	h2.Energy = -1.17
	h := testMolecule("H", []int{1}, 0)
	h.Energy = -0.5
	rs, err := AtomizationReactions([]*graddft.Molecule{h2}, map[int]*graddft.Molecule{1: h})
	if err != nil {
		Te.Fatal(err)
	}
	if len(rs) != 1 {
		Te.Fatal("expected one reaction")
	}
	r := rs[0]
	if r.ReactantNumbers[0] != 2 || r.Reactants[0] != h || r.Products[0] != h2 {
		Te.Error("wrong stoichiometry")
	}
	if math.Abs(r.Energy-(-1.17-2*(-0.5))) > 1e-14 {
		Te.Error("atomization energy:", r.Energy)
	}
	//a missing atom reference is an error
	o2 := testMolecule("O2", []int{8, 8}, 2.3)
	o2.Energy = -150
	if _, err := AtomizationReactions([]*graddft.Molecule{o2}, map[int]*graddft.Molecule{1: h}); err == nil {
		Te.Error("expected an error for a missing isolated-atom reference")
	}
}

//nullFunctional lets the labeling helper run without pulling in the
//functional package.
type nullFunctional struct{}

func (nullFunctional) Name() string                { return "null" }
func (nullFunctional) Exc(d *graddft.Dens) float64 { return 0 }
func (nullFunctional) VRho(d *graddft.Dens) [2][]float64 {
	var v [2][]float64
	for s := 0; s < 2; s++ {
		v[s] = make([]float64, d.Len())
	}
	return v
}
