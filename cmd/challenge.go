package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidquest/internal/challenges"
	"github.com/abhisek/kidquest/internal/progress"
)

var challengeCmd = &cobra.Command{
	Use:   "challenge <category> <topic> <challenge>",
	Short: "Play one challenge in the terminal and record it when solved",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		catID, topicID, chID := args[0], args[1], args[2]

		locked, err := d.progress.Locked(ctx, catID, topicID, chID)
		if err != nil {
			return completionError(err, args)
		}
		if locked {
			return completionError(progress.ErrChallengeLocked, args)
		}

		c := d.progress.Curriculum()
		h, err := d.registry.Lookup(challenges.Key{
			Subject: c.Subject(), Year: c.Year(), TopicID: topicID, ChallengeID: chID,
		})
		if err != nil {
			return fmt.Errorf("%w (only some challenges have games so far; use `kidquest curriculum complete` to tick it off)", err)
		}

		seed, _ := cmd.Flags().GetUint64("seed")
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		session := challenges.NewSession(h.Generate(rand.New(rand.NewPCG(seed, seed>>1))))

		out := cmd.OutOrStdout()
		in := bufio.NewScanner(cmd.InOrStdin())
		fmt.Fprintf(out, "%s\n(type q to give up)\n", h.Title())
		for !session.Done() {
			q, _ := session.Current()
			n, total := session.Position()
			fmt.Fprintf(out, "\n[%d/%d] %s\n> ", n, total, q.Describe())
			if !in.Scan() {
				return errors.New("input closed before the challenge was finished")
			}
			line := strings.TrimSpace(in.Text())
			if line == "q" {
				fmt.Fprintln(out, "Come back and try again soon!")
				return nil
			}
			correct, err := session.SubmitText(line)
			switch {
			case err != nil:
				fmt.Fprintln(out, err)
			case correct:
				fmt.Fprintln(out, "Correct!")
			default:
				fmt.Fprintln(out, "Not quite, try again.")
			}
		}

		res, err := d.progress.Complete(ctx, catID, topicID, chID)
		if err != nil {
			return completionError(err, args)
		}
		fmt.Fprintf(out, "\nWell done! Mistakes: %d\n", session.Mistakes())
		printCompletion(cmd, res)
		return nil
	},
}

func init() {
	challengeCmd.Flags().Uint64("seed", 0, "Seed for the puzzle generator (0 picks one)")
}
