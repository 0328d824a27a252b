package main

import (
	goflag "flag"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/trnlp/turkish-tokenizer/tokenizer"
	"github.com/trnlp/turkish-tokenizer/vocab"
)

var (
	cfgFile   string
	activeCfg Config
)

func NewRootCmd() *cobra.Command {
	defaults := DefaultConfig()

	cmd := &cobra.Command{
		Use:           "turkishtok",
		Short:         "Turkish morphological tokenizer command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := LoadConfig(cmd.Flags(), cfgFile, defaults)
			if err != nil {
				return err
			}
			activeCfg = loaded
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	RegisterFlags(cmd.PersistentFlags(), defaults)

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newVocabCmd())
	cmd.AddCommand(newBatchCmd())

	return cmd
}

// loadTokenizer builds the engine from the configured vocabulary source:
// a local directory when --vocab-dir is set, the hub cache otherwise.
func loadTokenizer(cmd *cobra.Command) (*tokenizer.Tokenizer, error) {
	var dicts *vocab.Dictionaries
	var err error
	if activeCfg.VocabDir != "" {
		dicts, err = vocab.LoadDir(activeCfg.VocabDir)
	} else {
		dicts, err = vocab.Download(cmd.Context(), vocab.DownloadOptions{
			RepoID:   activeCfg.RepoID,
			CacheDir: activeCfg.CacheDir,
		})
	}
	if err != nil {
		return nil, err
	}
	return dicts.Tokenizer()
}
