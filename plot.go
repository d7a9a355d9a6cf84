/*
 * plot.go, part of microsolvator.
 *
 * Copyright 2025 kangmg
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

package microsolv

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//PlotPopulations draws the normalized cluster populations as a bar chart
//and saves it to filename. The format follows the extension (png, svg,
//pdf...).
func PlotPopulations(weights []float64, filename string) error {
	errid := "microsolv/PlotPopulations"
	if len(weights) == 0 {
		return fmt.Errorf("%s: nothing to plot", errid)
	}
	p := plot.New()
	p.Title.Text = "Cluster populations"
	p.X.Label.Text = "Cluster"
	p.Y.Label.Text = "Population"
	bars, err := plotter.NewBarChart(plotter.Values(weights), vg.Points(15))
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	p.Add(bars)
	if err := p.Save(14*vg.Centimeter, 10*vg.Centimeter, filename); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}
