package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"pawhub/gateway/pkg/querycache"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Print the client query cache policy",
	Long: `Print the query cache policy the gateway client applies to reads: how long
a result stays fresh, when unused entries are evicted, and how often a failed
fetch is retried.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResult(cmd, newPolicyView(querycache.DefaultPolicy()))
	},
}

func init() {
	rootCmd.AddCommand(policyCmd)
}

// policyView mirrors the query client options in milliseconds.
type policyView struct {
	StaleTime            int64 `json:"staleTime" yaml:"staleTime"`
	GCTime               int64 `json:"gcTime" yaml:"gcTime"`
	Retry                int   `json:"retry" yaml:"retry"`
	RefetchOnWindowFocus bool  `json:"refetchOnWindowFocus" yaml:"refetchOnWindowFocus"`
	RefetchOnMount       bool  `json:"refetchOnMount" yaml:"refetchOnMount"`
}

func newPolicyView(p querycache.Policy) policyView {
	return policyView{
		StaleTime:            p.StaleTimeMS(),
		GCTime:               p.GCTimeMS(),
		Retry:                p.Retry(),
		RefetchOnWindowFocus: p.RefetchOnWindowFocus(),
		RefetchOnMount:       p.RefetchOnMount(),
	}
}

func (v policyView) Header() []string { return []string{"OPTION", "VALUE"} }

func (v policyView) Rows() [][]string {
	return [][]string{
		{"staleTime", strconv.FormatInt(v.StaleTime, 10)},
		{"gcTime", strconv.FormatInt(v.GCTime, 10)},
		{"retry", strconv.Itoa(v.Retry)},
		{"refetchOnWindowFocus", strconv.FormatBool(v.RefetchOnWindowFocus)},
		{"refetchOnMount", strconv.FormatBool(v.RefetchOnMount)},
	}
}
