// Package errors はheartriskライブラリ全体のエラーハンドリングと警告システムを提供します。
// 入力契約違反（空のデータセット、欠損特徴量、未学習モデル）を型付きエラーとして表現し、
// cockroachdb/errors によるスタックトレースと zerolog 向けの構造化情報を付与します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("heartrisk-warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// UnobservedFeatureWarning は統計量の計算時に、ある特徴量の値が一つも観測されなかった場合の警告です。
// その特徴量には平均0・標準偏差1が割り当てられます。
type UnobservedFeatureWarning struct {
	Feature string
	Samples int
}

func (w *UnobservedFeatureWarning) Error() string {
	return fmt.Sprintf("feature '%s' has no observed values in %d samples; using mean=0, std=1", w.Feature, w.Samples)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UnobservedFeatureWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("feature", w.Feature).
		Int("samples", w.Samples).
		Str("type", "UnobservedFeatureWarning")
}

// NewUnobservedFeatureWarning は新しいUnobservedFeatureWarningを作成します。
func NewUnobservedFeatureWarning(feature string, samples int) *UnobservedFeatureWarning {
	return &UnobservedFeatureWarning{Feature: feature, Samples: samples}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ModelNotTrainedError は学習されていないアンサンブルで予測を行おうとした場合のエラーです。
type ModelNotTrainedError struct {
	ModelName string
	Method    string
}

func (e *ModelNotTrainedError) Error() string {
	return fmt.Sprintf("heartrisk: %s: model is not trained yet. Call Train() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ModelNotTrainedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "ModelNotTrainedError")
}

// NewModelNotTrainedError は新しいModelNotTrainedErrorを作成し、スタックトレースを付与します。
func NewModelNotTrainedError(modelName, method string) error {
	err := &ModelNotTrainedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// EmptyDatasetError は0件のサンプルで統計量の計算や学習を行おうとした場合のエラーです。
type EmptyDatasetError struct {
	Op string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("heartrisk: %s: dataset is empty", e.Op)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *EmptyDatasetError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("type", "EmptyDatasetError")
}

// NewEmptyDatasetError は新しいEmptyDatasetErrorを作成し、スタックトレースを付与します。
func NewEmptyDatasetError(op string) error {
	return errors.WithStack(&EmptyDatasetError{Op: op})
}

// TrainingDataError は学習データが契約を満たさない場合のエラーです。
// ラベルの欠損、二値でないラベル、必須特徴量の欠損などが該当します。
// Row は問題のあるサンプルの位置で、データセット全体の問題の場合は -1 です。
type TrainingDataError struct {
	Row    int
	Reason string
	Err    error
}

func (e *TrainingDataError) Error() string {
	msg := "heartrisk: invalid training data"
	if e.Row >= 0 {
		msg = fmt.Sprintf("%s at row %d", msg, e.Row)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *TrainingDataError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *TrainingDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("row", e.Row).
		Str("reason", e.Reason).
		Str("type", "TrainingDataError")
}

// NewTrainingDataError は新しいTrainingDataErrorを作成し、スタックトレースを付与します。
func NewTrainingDataError(row int, reason string, cause error) error {
	return errors.WithStack(&TrainingDataError{Row: row, Reason: reason, Err: cause})
}

// InvalidSampleError は13個の臨床特徴量のいずれかが欠損している、
// または数値でない値を含むサンプルを受け取った場合のエラーです。
type InvalidSampleError struct {
	Op      string
	Feature string
	Reason  string
	Value   interface{}
}

func (e *InvalidSampleError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("heartrisk: %s: invalid sample: feature '%s' %s (got: %v)", e.Op, e.Feature, e.Reason, e.Value)
	}
	return fmt.Sprintf("heartrisk: %s: invalid sample: feature '%s' %s", e.Op, e.Feature, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidSampleError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("feature", e.Feature).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "InvalidSampleError")
}

// NewInvalidSampleError は新しいInvalidSampleErrorを作成し、スタックトレースを付与します。
func NewInvalidSampleError(op, feature, reason string, value interface{}) error {
	return errors.WithStack(&InvalidSampleError{Op: op, Feature: feature, Reason: reason, Value: value})
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("heartrisk: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// 予測時のロジットが NaN や Inf になった場合などに発生します。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "predict_logit", "residuals"）
	Values    []float64 // 問題のある値
	Iteration int       // 発生したイテレーション番号（ブースティングラウンド）
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("heartrisk: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// GetSafeDetails はエラーチェーンに記録された安全な詳細情報（スタックトレースを含む）を返します。
func GetSafeDetails(err error) []string {
	return errors.GetSafeDetails(err).SafeDetails
}
