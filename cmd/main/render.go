package main

import (
	"fmt"
	"strings"

	"github.com/CTAG07/movement-generator/pkg/history"
	"github.com/CTAG07/movement-generator/pkg/render"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// renderFlag maps a command-line flag onto a config key.
type renderFlag struct {
	name   string
	short  string
	key    string
	usage  string
	isBool bool
}

var renderFlags = []renderFlag{
	{name: "template", short: "i", key: "template_path", usage: "Template file to read"},
	{name: "output", short: "o", key: "output_path", usage: "Page file to write"},
	{name: "title", key: "context.title", usage: "Value for #MainTitle#"},
	{name: "story", key: "context.story", usage: "Value for #Story#"},
	{name: "plea", key: "context.plea", usage: "Value for #Plea#"},
	{name: "friends", key: "context.friends", usage: "Value for #NumberofFriends#"},
	{name: "likes", key: "context.likes", usage: "Value for #NumberofLikes#"},
	{name: "followers", key: "context.followers", usage: "Value for #NumberofFollowers#"},
	{name: "verified", key: "context.verified", usage: "Keep the verified badge", isBool: true},
	{name: "famous-support", key: "context.famous_support", usage: "Keep the famous endorsement", isBool: true},
	{name: "famous-person", key: "context.famous_person", usage: "Value for #FamousPerson#"},
	{name: "profile-pic", key: "context.profile_pic", usage: "Value for #ProfilePic#"},
	{name: "banner-pic", key: "context.banner_pic", usage: "Value for #BannerPic#"},
	{name: "team-pic", key: "context.team_pic", usage: "Value for #TeamPic#"},
}

// addRenderFlags registers the render flags on fs. Defaults are left empty so
// that only flags given on the command line override the config.
func addRenderFlags(fs *pflag.FlagSet) {
	for _, f := range renderFlags {
		if f.isBool {
			fs.BoolP(f.name, f.short, false, f.usage)
		} else {
			fs.StringP(f.name, f.short, "", f.usage)
		}
	}
}

func bindRenderFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, f := range renderFlags {
		flag := fs.Lookup(f.name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(f.key, flag); err != nil {
			return err
		}
	}
	return nil
}

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the template to the output page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd)
		},
	}
	addRenderFlags(cmd.Flags())
	return cmd
}

func (a *app) runRender(cmd *cobra.Command) error {
	if err := a.setup(cmd); err != nil {
		return err
	}
	config := a.config

	r := render.NewRenderer(a.logger, config.Fragments)
	res, err := r.RenderFile(config.TemplatePath, config.OutputPath, config.Context)
	if err != nil {
		return err
	}
	if len(res.Unresolved) > 0 {
		a.logger.Warn("Page still contains placeholder tokens", "output", config.OutputPath, "tokens", strings.Join(res.Unresolved, ","))
	}

	if config.HistoryDB != "" {
		store, closeDB, err := openHistory(config.HistoryDB, a.logger)
		if err != nil {
			return err
		}
		defer closeDB()
		_, err = store.Record(cmd.Context(), history.Run{
			TemplatePath: config.TemplatePath,
			OutputPath:   config.OutputPath,
			Title:        config.Context.Title,
			Bytes:        res.Bytes,
			Checksum:     res.Checksum,
			Unresolved:   len(res.Unresolved),
		})
		if err != nil {
			return fmt.Errorf("failed to record render: %w", err)
		}
	}

	Success.Fprintf(a.out, "Wrote %s (%d bytes)\n", config.OutputPath, res.Bytes)
	return nil
}
