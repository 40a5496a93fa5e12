package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidquest/internal/progress"
)

var curriculumCmd = &cobra.Command{
	Use:     "curriculum",
	Aliases: []string{"board"},
	Short:   "Inspect and update curriculum progress",
}

var curriculumListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories, topics and their lock state",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		showChallenges, _ := cmd.Flags().GetBool("challenges")
		board := d.progress.Board(cmd.Context())
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s, year %d\n", board.Subject, board.Year)
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, cat := range board.Categories {
			fmt.Fprintf(out, "%s %s  (%s)\n", categoryIcon(cat), cat.Category.Title, cat.Category.ID)
			for _, topic := range cat.Topics {
				fmt.Fprintf(out, "   %s %-52s %d/%d\n",
					topicIcon(topic), topic.Topic.Name, topic.Done, len(topic.Challenges))
				if !showChallenges {
					continue
				}
				for _, ch := range topic.Challenges {
					fmt.Fprintf(out, "       %s %-20s %s\n", ch.State.Icon(), ch.Challenge.ID, ch.State)
				}
			}
		}

		done, total := board.Counts()
		fmt.Fprintf(out, "\n%d of %d challenges completed\n", done, total)
		if cat, topic, ch, ok := board.Next(); ok {
			fmt.Fprintf(out, "Next up: %s %s %s\n", cat, topic, ch)
		}
		return nil
	},
}

var curriculumCompleteCmd = &cobra.Command{
	Use:   "complete <category> <topic> <challenge>",
	Short: "Mark a challenge as completed without playing it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := d.progress.Complete(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return completionError(err, args)
		}
		printCompletion(cmd, res)
		return nil
	},
}

var curriculumKeyCmd = &cobra.Command{
	Use:   "key",
	Short: "Print the storage key and raw completion record",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		data, err := progress.Encode(d.progress.Record(cmd.Context()))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), d.progress.Key())
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	curriculumListCmd.Flags().Bool("challenges", false, "Show every challenge")

	curriculumCmd.AddCommand(curriculumListCmd)
	curriculumCmd.AddCommand(curriculumCompleteCmd)
	curriculumCmd.AddCommand(curriculumKeyCmd)
}

func categoryIcon(c progress.CategoryStatus) string {
	switch {
	case c.Complete:
		return progress.StateCompleted.Icon()
	case c.Locked:
		return progress.StateLocked.Icon()
	default:
		return progress.StateUnlocked.Icon()
	}
}

func topicIcon(t progress.TopicStatus) string {
	switch {
	case t.Complete:
		return progress.StateCompleted.Icon()
	case t.Locked:
		return progress.StateLocked.Icon()
	default:
		return progress.StateUnlocked.Icon()
	}
}

func completionError(err error, path []string) error {
	switch {
	case errors.Is(err, progress.ErrUnknownNode):
		return fmt.Errorf("%s: not in this curriculum (see `kidquest curriculum list`)", strings.Join(path, "/"))
	case errors.Is(err, progress.ErrChallengeLocked):
		return fmt.Errorf("%s is still locked, finish the earlier challenges first", strings.Join(path, "/"))
	}
	return err
}

func printCompletion(cmd *cobra.Command, res progress.CompletionResult) {
	out := cmd.OutOrStdout()
	if res.AlreadyCompleted {
		fmt.Fprintf(out, "%s was already completed.\n", res.ChallengeID)
		return
	}
	fmt.Fprintf(out, "Completed %s in %s.\n", res.ChallengeID, res.TopicID)
	if res.TopicCompleted {
		fmt.Fprintf(out, "Topic %s is complete!\n", res.TopicID)
	}
	if res.CategoryCompleted {
		fmt.Fprintf(out, "Category %s is complete, the next category is unlocked!\n", res.CategoryID)
	}
}
