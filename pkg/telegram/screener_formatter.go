package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-idx-screener/internal/entity"
)

// FormatScanResult formats a screening run into Markdown strings for Telegram,
// splitting into multiple messages when the 4096-char limit would be exceeded.
func FormatScanResult(mode entity.Mode, rows []entity.ScanRow, fetchedAt time.Time) []string {
	if len(rows) == 0 {
		return []string{fmt.Sprintf("Tidak ada saham yang lolos screening %s pada %s.", mode, fetchedAt.Format("02 Jan 2006 15:04"))}
	}

	const maxLen = 4090
	var messages []string
	var currentMessage strings.Builder
	part := 1

	startNewPart := func() {
		currentMessage.Reset()
		var header string
		if part == 1 {
			header = fmt.Sprintf("📊 *Hasil Screening %s* 📊\n🕐 %s WIB — %d saham lolos\n\n", mode, fetchedAt.Format("02 Jan 2006 15:04"), len(rows))
		} else {
			header = fmt.Sprintf("---*Lanjutan Hasil Screening %s Part %d*---\n\n", mode, part)
		}
		currentMessage.WriteString(header)
	}

	startNewPart()

	for i, row := range rows {
		entry := fmt.Sprintf("%d. 📈 *%s* — Close %.0f | Chg %.2f%% | Val %.2fB | VWAPDist %.2f%% | Wick %.2f%%\n",
			i+1, row.Name, row.Close, row.Change, row.ValueB, row.VwapDistPct, row.WickPct)

		if currentMessage.Len()+len(entry) > maxLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		currentMessage.WriteString(entry)
	}

	messages = append(messages, currentMessage.String())
	return messages
}
