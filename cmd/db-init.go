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
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/vocduel/internal/infrastructure/config"
	"github.com/eslsoft/vocduel/internal/infrastructure/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         BIGINT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS words (
	id         BIGSERIAL PRIMARY KEY,
	word       TEXT NOT NULL,
	hint       TEXT NOT NULL DEFAULT '',
	definition TEXT NOT NULL DEFAULT '',
	image_url  TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_word_progress (
	user_id          BIGINT NOT NULL REFERENCES users(id),
	word_id          BIGINT NOT NULL REFERENCES words(id),
	level_id         INT NOT NULL DEFAULT 1,
	streak_correct   INT NOT NULL DEFAULT 0,
	total_right      INT NOT NULL DEFAULT 0,
	total_wrong      INT NOT NULL DEFAULT 0,
	last_reviewed_at TIMESTAMPTZ,
	due_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_result      TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (user_id, word_id)
);

CREATE INDEX IF NOT EXISTS idx_progress_due ON user_word_progress (user_id, due_at);

CREATE TABLE IF NOT EXISTS srs_settings (
	id      INT PRIMARY KEY,
	payload JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS versus_rooms (
	id              BIGSERIAL PRIMARY KEY,
	code            TEXT NOT NULL UNIQUE,
	status          TEXT NOT NULL DEFAULT 'waiting',
	player_a_id     BIGINT NOT NULL REFERENCES users(id),
	player_b_id     BIGINT REFERENCES users(id),
	current_turn    BIGINT,
	words_for_a     JSONB,
	words_for_b     JSONB,
	index_a         INT NOT NULL DEFAULT 0,
	index_b         INT NOT NULL DEFAULT 0,
	right_a         INT NOT NULL DEFAULT 0,
	wrong_a         INT NOT NULL DEFAULT 0,
	right_b         INT NOT NULL DEFAULT 0,
	wrong_b         INT NOT NULL DEFAULT 0,
	elapsed_a_ms    BIGINT NOT NULL DEFAULT 0,
	elapsed_b_ms    BIGINT NOT NULL DEFAULT 0,
	turn_started_at TIMESTAMPTZ,
	winner_id       BIGINT,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reverse_rooms (
	id                   BIGSERIAL PRIMARY KEY,
	code                 TEXT NOT NULL UNIQUE,
	host_id              BIGINT NOT NULL REFERENCES users(id),
	status               TEXT NOT NULL DEFAULT 'waiting',
	total_questions      INT NOT NULL DEFAULT 10,
	question_index       INT NOT NULL DEFAULT 0,
	question             JSONB,
	game_word_ids        JSONB,
	question_started_at  TIMESTAMPTZ,
	question_duration_ms INT NOT NULL DEFAULT 15000,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reverse_players (
	room_id      BIGINT NOT NULL REFERENCES reverse_rooms(id),
	user_id      BIGINT NOT NULL REFERENCES users(id),
	join_order   INT NOT NULL,
	total_score  INT NOT NULL DEFAULT 0,
	connected    BOOLEAN NOT NULL DEFAULT TRUE,
	last_seen_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (room_id, user_id)
);

CREATE TABLE IF NOT EXISTS reverse_answers (
	id               BIGSERIAL PRIMARY KEY,
	room_id          BIGINT NOT NULL REFERENCES reverse_rooms(id),
	question_index   INT NOT NULL,
	user_id          BIGINT NOT NULL REFERENCES users(id),
	selected_word_id BIGINT NOT NULL DEFAULT 0,
	correct          BOOLEAN NOT NULL DEFAULT FALSE,
	only_correct     BOOLEAN NOT NULL DEFAULT FALSE,
	points           INT NOT NULL DEFAULT 0,
	answer_time_ms   BIGINT NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (room_id, question_index, user_id)
);
`

// dbInitCmd creates the schema. Safe to re-run; everything is guarded by
// IF NOT EXISTS.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		pool, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()
		if _, err := pool.Exec(ctx, schema); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
		fmt.Println("schema applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
}
