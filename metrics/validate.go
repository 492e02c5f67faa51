package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// checkPair は2つのベクトルが nil でなく、空でなく、同じ長さであることを確認する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return 0, errors.NewValidationError(op, "empty vector", 0)
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewValidationError(op, "yPred length must match yTrue",
			fmt.Sprintf("%d != %d", yPred.Len(), n))
	}
	return n, nil
}

// checkBinary はラベルが 0 または 1 のみであることを確認する
func checkBinary(op string, yTrue *mat.VecDense) error {
	for i := 0; i < yTrue.Len(); i++ {
		if v := yTrue.AtVec(i); v != 0 && v != 1 {
			return errors.NewValidationError(op, "labels must be 0 or 1", v)
		}
	}
	return nil
}
