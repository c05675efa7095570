package sqlite

import "fmt"

// seedCatalog populates the mindfulness-session and reflection-prompt
// catalogs on first start. Both tables are reference data — read-only from
// the client's perspective — so we only insert when a table is empty,
// leaving any operator edits alone on subsequent starts.
func (db *DB) seedCatalog() error {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM mindfulness_sessions`).Scan(&count); err != nil {
		return fmt.Errorf("counting mindfulness sessions: %w", err)
	}
	if count == 0 {
		sessions := []struct {
			title, description string
			duration           int
			audioURL           string
			premium            bool
		}{
			{
				"Morning Meditation",
				"Start your day with clarity and intention. This meditation helps you set a positive tone for the day ahead.",
				10, "https://mindfulnessapp.com/audio/morning-meditation.mp3", false,
			},
			{
				"Anxiety Relief",
				"A guided practice to help reduce feelings of anxiety and stress, focusing on deep breathing and body awareness.",
				15, "https://mindfulnessapp.com/audio/anxiety-relief.mp3", false,
			},
			{
				"Deep Sleep Guide",
				"Fall asleep faster with this calming meditation designed to quiet the mind and prepare your body for restful sleep.",
				30, "https://mindfulnessapp.com/audio/deep-sleep.mp3", true,
			},
			{
				"Focus & Concentration",
				"Enhance your ability to focus and concentrate with this mindfulness practice for mental clarity.",
				12, "https://mindfulnessapp.com/audio/focus.mp3", false,
			},
			{
				"Body Scan Relaxation",
				"A guided body scan meditation to release tension and promote deep relaxation throughout your body.",
				20, "https://mindfulnessapp.com/audio/body-scan.mp3", false,
			},
			{
				"Advanced Mindfulness",
				"For experienced practitioners, this session explores advanced mindfulness techniques for deeper awareness.",
				25, "https://mindfulnessapp.com/audio/advanced.mp3", true,
			},
		}
		for _, s := range sessions {
			_, err := db.conn.Exec(
				`INSERT INTO mindfulness_sessions (title, description, duration, audio_url, is_premium)
				 VALUES (?, ?, ?, ?, ?)`,
				s.title, s.description, s.duration, s.audioURL, s.premium,
			)
			if err != nil {
				return fmt.Errorf("inserting mindfulness session %q: %w", s.title, err)
			}
		}
	}

	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM reflection_prompts`).Scan(&count); err != nil {
		return fmt.Errorf("counting reflection prompts: %w", err)
	}
	if count == 0 {
		prompts := []struct {
			prompt  string
			premium bool
		}{
			{"What made you smile today? Take a moment to reflect on a positive experience, no matter how small.", false},
			{"List three things you're grateful for today and why they matter to you.", false},
			{"Think about a challenge you're facing. What strengths and resources do you have to help you overcome it?", true},
			{"Reflect on a recent interaction that affected you emotionally. What triggered your response and what might you learn from it?", true},
			{"What is one small step you can take today toward a goal that matters to you?", false},
			{"Consider a relationship in your life. How might you nurture it with intention this week?", false},
			{"Explore a belief or thought pattern that may be limiting you. How might you reframe it in a more empowering way?", true},
		}
		for _, p := range prompts {
			_, err := db.conn.Exec(
				`INSERT INTO reflection_prompts (prompt, is_premium) VALUES (?, ?)`,
				p.prompt, p.premium,
			)
			if err != nil {
				return fmt.Errorf("inserting reflection prompt: %w", err)
			}
		}
	}

	return nil
}
