package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bkrawczyk/cv-coach/pkg/config"
	"github.com/bkrawczyk/cv-coach/pkg/engine"
	"github.com/bkrawczyk/cv-coach/pkg/interview"
	"github.com/bkrawczyk/cv-coach/pkg/llm"
	"github.com/bkrawczyk/cv-coach/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var resumeFile string

//nolint:gochecknoglobals // Cobra boilerplate
var chosenRole string

//nolint:gochecknoglobals // Cobra boilerplate
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive coaching session for a CV experience section",
	Long: `Start an interactive session: paste the experience section of a CV
(or load it with --resume), answer the follow-up questions, and receive
before/after rewrites of each role.

Multi-line input is finished with an empty line. Type "exit" to quit.

Example:
  cv-coach chat
  cv-coach chat --resume cv.txt --role "Specjalista ds. Sprzedaży B2B"`,
	RunE: runChat,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&resumeFile, "resume", "", "File containing the experience section (default from config)")
	chatCmd.Flags().StringVar(&chosenRole, "role", "", "Role title to start with, skipping the audit listing")
}

func runChat(cmd *cobra.Command, args []string) (err error) {
	logger.Setup(getVerbose())

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	sessionID := uuid.New().String()[:8]
	log := slog.Default().With("session", sessionID)

	client := llm.NewClient(cfg.AnthropicAPIKey, cfg.Model, cfg.Timeout())
	eng := engine.New(client, log)

	var pinned string
	pinned, err = loadPinnedText(cfg)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var transcript []interview.Turn
	roleToStart := chosenRole

	if pinned == "" {
		fmt.Println("Wklej sekcję „Doświadczenie” ze swojego CV (pusta linia kończy wklejanie):")
		fmt.Println()
		var ok bool
		pinned, ok = readTurn(scanner)
		if !ok {
			return err
		}
	}

	for {
		var resp engine.Response
		resp, err = eng.Respond(context.Background(), engine.Request{
			Transcript: transcript,
			PinnedText: pinned,
			ChosenRole: roleToStart,
		})
		if err != nil {
			err = errors.Wrap(err, "engine failure")
			return err
		}
		roleToStart = ""

		fmt.Println()
		fmt.Println(resp.Text)
		fmt.Println()
		transcript = append(transcript, interview.Turn{
			Speaker: interview.SpeakerAssistant,
			Text:    resp.Text,
			Tag:     resp.Tag,
		})
		log.Debug("assistant turn", "kind", string(resp.Kind), "tag", resp.Tag)

		input, ok := readTurn(scanner)
		if !ok {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "exit", "quit", "koniec":
			fmt.Println("Powodzenia!")
			return err
		}

		pinned = repinOnOnboarding(eng, resp.Kind, pinned, input)

		transcript = append(transcript, interview.Turn{
			Speaker: interview.SpeakerUser,
			Text:    input,
		})
	}
}

// repinOnOnboarding returns the text the next turn should parse. After an
// onboarding response (no recognizable roles, or all roles done) the user's
// input is taken as a fresh paste when it segments into roles; otherwise the
// previous text is kept so typed role titles still resolve against it.
func repinOnOnboarding(eng *engine.Engine, kind engine.ResponseKind, pinned, input string) (next string) {
	next = pinned
	if kind != engine.KindOnboarding {
		return next
	}
	if report := eng.Audit(input); report.Kind != engine.KindOnboarding {
		next = input
	}
	return next
}

// loadPinnedText reads the experience text from the --resume flag or the
// configured default file. An empty result means the user will paste it.
func loadPinnedText(cfg config.Config) (pinned string, err error) {
	path := resumeFile
	if path == "" {
		path = cfg.Defaults.ResumeFile
	}
	if path == "" {
		return pinned, err
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read resume file: %s", path)
		return pinned, err
	}
	pinned = string(data)
	return pinned, err
}

// readTurn collects lines until an empty line. ok is false on EOF with no
// content.
func readTurn(scanner *bufio.Scanner) (text string, ok bool) {
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		lines = append(lines, line)
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))
	ok = text != ""
	return text, ok
}
