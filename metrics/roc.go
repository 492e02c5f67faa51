package metrics

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// ROC は閾値ごとの偽陽性率と真陽性率の列
// 先頭は (0,0)、末尾は (1,1) で、Thresholds[i] 以上のスコアを陽性とみなしたときの点が i 番目になる
type ROC struct {
	FPR        []float64
	TPR        []float64
	Thresholds []float64
}

// ROCCurve はスコアの降順に閾値を下げながらROC曲線の点を計算する
// 同じスコアは1つの点にまとめられる
func ROCCurve(yTrue, yScore *mat.VecDense) (*ROC, error) {
	n, err := checkPair("ROCCurve", yTrue, yScore)
	if err != nil {
		return nil, err
	}
	if err := checkBinary("ROCCurve", yTrue); err != nil {
		return nil, err
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return yScore.AtVec(idx[a]) > yScore.AtVec(idx[b])
	})

	var pos, neg float64
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return nil, errors.NewValidationError("ROCCurve", "both classes are required", fmt.Sprintf("pos=%v neg=%v", pos, neg))
	}

	roc := &ROC{FPR: []float64{0}, TPR: []float64{0}, Thresholds: []float64{yScore.AtVec(idx[0]) + 1}}
	var tp, fp float64
	for i := 0; i < n; i++ {
		if yTrue.AtVec(idx[i]) == 1 {
			tp++
		} else {
			fp++
		}
		if i+1 < n && yScore.AtVec(idx[i+1]) == yScore.AtVec(idx[i]) {
			continue
		}
		roc.FPR = append(roc.FPR, fp/neg)
		roc.TPR = append(roc.TPR, tp/pos)
		roc.Thresholds = append(roc.Thresholds, yScore.AtVec(idx[i]))
	}
	return roc, nil
}

// Area は台形則でROC曲線下面積を計算する
func (r *ROC) Area() float64 {
	var area float64
	for i := 1; i < len(r.FPR); i++ {
		area += (r.FPR[i] - r.FPR[i-1]) * (r.TPR[i] + r.TPR[i-1]) / 2
	}
	return area
}

// SaveROCPlot はROC曲線を画像ファイルとして保存する
// 形式は拡張子（.png, .svg, .pdf など）から決まる
func SaveROCPlot(r *ROC, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(r.FPR))
	for i := range r.FPR {
		pts[i].X = r.FPR[i]
		pts[i].Y = r.TPR[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "heartrisk: build roc line")
	}
	line.Color = color.RGBA{R: 200, A: 255}
	line.Width = vg.Points(1.5)

	chance := plotter.NewFunction(func(x float64) float64 { return x })
	chance.Color = color.Gray{Y: 128}
	chance.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(line, chance)
	p.Legend.Add(fmt.Sprintf("model (AUC = %.3f)", r.Area()), line)
	p.Legend.Add("chance", chance)
	p.Legend.Top = false
	p.Legend.Left = false

	if err := p.Save(5*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "heartrisk: save roc plot to %s", path)
	}
	return nil
}
