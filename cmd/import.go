/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	adapter "github.com/eslsoft/vocduel/internal/adapter/repository"
	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/infrastructure/config"
	"github.com/eslsoft/vocduel/internal/infrastructure/database"
)

// importCmd loads a word list from an xlsx sheet. Expected columns:
// word, hint, definition, image url. The first row is treated as a
// header when its first cell reads "word".
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import words from an xlsx file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		sheet, _ := cmd.Flags().GetString("sheet")
		if path == "" {
			return fmt.Errorf("--file is required")
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		if sheet == "" {
			sheet = f.GetSheetName(0)
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		pool, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()

		words := adapter.NewWordRepository(pool)
		now := time.Now()
		imported := 0
		for i, row := range rows {
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}
			if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "word") {
				continue
			}
			word := entity.UserWord{Word: strings.TrimSpace(row[0]), DueAt: now}
			if len(row) > 1 {
				word.Hint = strings.TrimSpace(row[1])
			}
			if len(row) > 2 {
				word.Definition = strings.TrimSpace(row[2])
			}
			if len(row) > 3 {
				word.ImageURL = strings.TrimSpace(row[3])
			}
			if _, err := words.Add(cmd.Context(), &word); err != nil {
				return fmt.Errorf("import row %d (%s): %w", i+1, word.Word, err)
			}
			imported++
		}
		fmt.Printf("imported %d words\n", imported)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("file", "", "path to the xlsx file")
	importCmd.Flags().String("sheet", "", "sheet name (defaults to the first sheet)")
}
