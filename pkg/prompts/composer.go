// Package prompts は、各ツールの構造化入力を画像生成モデル向けの
// 単一の自然言語プロンプトへ変換する純粋な合成関数を提供します。
// 同一入力に対する出力はバイト単位で一致します（乱数・時刻を含みません）。
package prompts

import (
	"fmt"
	"strings"
)

// お絵描きアシスタントの生成モード識別子です。
const (
	ModeTextToImage   = "text-to-image"
	ModeStyleTransfer = "style-transfer"
)

const (
	// legoClosing はレゴ作品のリアルな3Dレンダリングを要求する固定の締め指示です。
	legoClosing = "Show the LEGO creation as a realistic 3D rendered model with proper LEGO brick textures and connections."
	// playgroundClosing は Apple Playground 風の遊び心ある画風を要求する固定の締め指示です。
	playgroundClosing = "Make it playful, colorful, and imaginative like Apple's Playground style with smooth gradients and dreamy effects."
)

// BuildDrawingPrompt はお絵描きアシスタントのプロンプトを合成します。
// mode が未知の場合はエラーを返します。
func BuildDrawingPrompt(prompt, style, mode string) (string, error) {
	switch mode {
	case ModeTextToImage:
		return fmt.Sprintf("Create a %s style artwork: %s", style, prompt), nil
	case ModeStyleTransfer:
		return fmt.Sprintf("Transform this image in %s artistic style: %s", style, prompt), nil
	}
	return "", fmt.Errorf("サポートされていない描画モード: %q。サポートされているモードは [%s] です",
		mode, strings.Join([]string{ModeStyleTransfer, ModeTextToImage}, ", "))
}

// BuildLegoPrompt はレゴクリエイターのプロンプトを合成します。
// colors と features は入力順のままカンマ区切りで埋め込みます。
// features が空でも文が壊れないように、結合結果をそのまま埋めるだけにしています。
func BuildLegoPrompt(prompt string, colors []string, size, complexity, theme string, features []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a detailed LEGO design: %s. ", prompt))
	sb.WriteString(fmt.Sprintf("Use primarily %s colors. ", strings.Join(colors, ", ")))
	sb.WriteString(fmt.Sprintf("Size: %s. Complexity: %s. Theme: %s. ", size, complexity, theme))
	sb.WriteString(fmt.Sprintf("Special features: %s. ", strings.Join(features, ", ")))
	sb.WriteString(legoClosing)
	return sb.String()
}

// BuildPlaygroundPrompt は絵文字プレイグラウンドのプロンプトを合成します。
// emojis は入力順のままスペース区切りで埋め込みます。
func BuildPlaygroundPrompt(emojis []string, background, style string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a whimsical, magical artwork featuring these emojis: %s. ", strings.Join(emojis, " ")))
	sb.WriteString(fmt.Sprintf("Background style: %s. Art style: %s. ", background, style))
	sb.WriteString(playgroundClosing)
	return sb.String()
}
