// Package model は学習済み状態の管理と、予測器が満たす共通インターフェースを提供します。
package model

import (
	"github.com/YuminosukeSato/heartrisk/clinical"
)

// TrainState はモデルの学習状態を表す
type TrainState int

const (
	// Untrained はモデルが未学習の状態
	Untrained TrainState = iota
	// Trained はモデルが学習済みの状態
	Trained
)

func (s TrainState) String() string {
	if s == Trained {
		return "trained"
	}
	return "untrained"
}

// Base は学習状態を持つ全てのモデルの基底となる構造体
type Base struct {
	state TrainState
}

// IsTrained はモデルが学習済みかどうかを返す
func (b *Base) IsTrained() bool {
	return b.state == Trained
}

// MarkTrained はモデルを学習済み状態に設定する
func (b *Base) MarkTrained() {
	b.state = Trained
}

// State は現在の学習状態を返す
func (b *Base) State() TrainState {
	return b.state
}

// Classifier はサンプルに対して疾患確率を返すモデルのインターフェース
// 評価指標の計算やCLIのレポートはこのインターフェース経由でモデルを扱う
type Classifier interface {
	// PredictProba は疾患である確率を [0,1] で返す
	PredictProba(s clinical.Sample) (float64, error)
	// IsTrained はモデルが学習済みかどうかを返す
	IsTrained() bool
}
