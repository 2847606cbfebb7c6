/*
 * plot.go, part of graddft.
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

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotLoss writes a PNG with the training cost per epoch, on a log scale
// when every cost is positive.
func PlotLoss(records []Record, filename string) error {
	if len(records) == 0 {
		return fmt.Errorf("train: nothing to plot")
	}
	p := plot.New()
	p.Title.Text = "Training cost"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Cost (Ha^2)"
	p.Add(plotter.NewGrid())
	pts := make(plotter.XYs, len(records))
	logscale := true
	for i, r := range records {
		pts[i].X = float64(r.Epoch)
		pts[i].Y = r.Cost
		if r.Cost <= 0 {
			logscale = false
		}
	}
	if logscale {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}
