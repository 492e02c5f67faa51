// Package preprocessing は臨床特徴量の Z スコア正規化を提供します。
//
// 学習時に一度だけ FitStats で各特徴量の平均と母標準偏差を計算し、
// 得られた FeatureStats はアンサンブルが所有して予測中は変更しません。
package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/heartrisk/clinical"
	"github.com/YuminosukeSato/heartrisk/pkg/errors"
	"github.com/YuminosukeSato/heartrisk/pkg/log"
)

// FeatureStats は特徴量ごとの平均と標準偏差を保持します。
// 標準偏差が0の特徴量は1として保存されるため、Normalize がゼロ除算することはありません。
type FeatureStats struct {
	// Mean は各特徴量の平均値（正準順）
	Mean [clinical.NumFeatures]float64

	// Std は各特徴量の母標準偏差（正準順、0 は 1 に置換済み）
	Std [clinical.NumFeatures]float64

	// Observed は各特徴量で値が存在したサンプル数
	Observed [clinical.NumFeatures]int
}

// FitStats はデータセットから特徴量統計を計算します。
//
// 各特徴量について、値が存在するサンプルのみを対象に算術平均と母標準偏差を求めます。
// 欠損値は分子・分母のどちらにも含めず、補完も行いません。
// 一度も観測されなかった特徴量には平均0・標準偏差1を割り当て、警告を発行します。
//
// 戻り値:
//   - *FeatureStats: 計算された統計量
//   - error: データセットが空の場合は EmptyDatasetError
//
// 使用例:
//
//	stats, err := preprocessing.FitStats(ds)
//	z := stats.Normalize(clinical.Cholesterol, 233)
func FitStats(ds clinical.Dataset) (*FeatureStats, error) {
	if len(ds) == 0 {
		return nil, errors.NewEmptyDatasetError("FitStats")
	}

	logger := log.GetLoggerWithName("preprocessing")
	stats := &FeatureStats{}
	buf := make([]float64, 0, len(ds))

	for _, f := range clinical.Features() {
		buf = buf[:0]
		for _, s := range ds {
			if v, ok := s.Get(f); ok {
				buf = append(buf, v)
			}
		}

		stats.Observed[f] = len(buf)
		if len(buf) == 0 {
			stats.Mean[f] = 0
			stats.Std[f] = 1
			errors.Warn(errors.NewUnobservedFeatureWarning(f.String(), len(ds)))
			continue
		}

		mean, std := stat.PopMeanStdDev(buf, nil)
		stats.Mean[f] = mean
		if std == 0 {
			std = 1
		}
		stats.Std[f] = std
	}

	logger.Debug("Feature statistics fitted",
		log.SamplesKey, len(ds),
		log.FeaturesKey, clinical.NumFeatures,
	)
	return stats, nil
}

// Normalize は (v - mean) / std を返します。純粋関数で、同じ入力には常に同じ結果を返します。
func (fs *FeatureStats) Normalize(f clinical.Feature, v float64) float64 {
	std := fs.Std[f]
	if std == 0 {
		std = 1
	}
	return (v - fs.Mean[f]) / std
}

// Denormalize は Normalize の逆変換 z*std + mean を返します。
func (fs *FeatureStats) Denormalize(f clinical.Feature, z float64) float64 {
	std := fs.Std[f]
	if std == 0 {
		std = 1
	}
	return z*std + fs.Mean[f]
}

// NormalizeSample はサンプルの全特徴量を正準順に正規化します。
// 欠損した特徴量があれば InvalidSampleError を返します。
func (fs *FeatureStats) NormalizeSample(s clinical.Sample) ([]float64, error) {
	if err := s.Validate("NormalizeSample"); err != nil {
		return nil, err
	}
	out := make([]float64, clinical.NumFeatures)
	for _, f := range clinical.Features() {
		out[f] = fs.Normalize(f, s.Value(f))
	}
	return out, nil
}

// String は統計量を人が読める形式で返します。
func (fs *FeatureStats) String() string {
	out := ""
	for _, f := range clinical.Features() {
		out += fmt.Sprintf("%-9s mean=%9.3f std=%8.3f n=%d\n", f, fs.Mean[f], fs.Std[f], fs.Observed[f])
	}
	return out
}
