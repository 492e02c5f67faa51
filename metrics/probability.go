package metrics

import (
	"gonum.org/v1/gonum/mat"
)

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var diff mat.VecDense
	diff.SubVec(yTrue, yPred)
	return mat.Dot(&diff, &diff) / float64(n), nil
}

// BrierScore は確率予測の二乗誤差（0/1 ラベルに対する MSE）を計算する
// 0 が完全な予測、0.25 が常に 0.5 を返す予測に相当する
func BrierScore(yTrue, yProb *mat.VecDense) (float64, error) {
	if _, err := checkPair("BrierScore", yTrue, yProb); err != nil {
		return 0, err
	}
	if err := checkBinary("BrierScore", yTrue); err != nil {
		return 0, err
	}
	return MSE(yTrue, yProb)
}
