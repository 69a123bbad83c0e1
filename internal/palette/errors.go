package palette

// ExtractionError reports a spell field that is missing or has the wrong
// shape. Its text is shown to the user as is.
type ExtractionError string

func (e ExtractionError) Error() string {
	return string(e)
}

const (
	ErrMissingName       ExtractionError = "チャットパレット出力のためにはスペル名が必要です。"
	ErrMissingMP         ExtractionError = "MPコストは次のどれかで定義してください（value, value+, special）。"
	ErrMissingTarget     ExtractionError = "対象の情報が必要です。魔法の対象は何ですか？"
	ErrMissingRange      ExtractionError = "射程の情報が必要です。魔法はどこまで届きますか？"
	ErrMissingTime       ExtractionError = "時間の情報が必要です。魔法はどれだけ持続しますか？"
	ErrMissingEffect     ExtractionError = "効果の情報が必要です。魔法はどんな効果ですか？"
	ErrMissingSchool     ExtractionError = "流派もしくはカテゴリの情報が通常魔法には必要です。"
	ErrInvalidTargetKind ExtractionError = "対象は個別かエリアかを選択する必要があります。"
	ErrInvalidTimeValue  ExtractionError = "時間の値は文字列もしくは整数である必要があります。"
)
