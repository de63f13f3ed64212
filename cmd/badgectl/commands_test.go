package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jbeshir/badge-desk/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = "First Name,Last Name,External System ID,Internal Number,Token Status," +
	"Issue Date,Deactivation Date,VIP,Type\n" +
	"Jean,Dupont,EXT-001,1001,1,2024-01-10,2024-06-25,1,Permanent\n" +
	"Marie,Curie,EXT-002,1002,4,2024-03-02,,0,Visiteur\n" +
	"Louis,Pasteur,EXT-003,1003,1,2024-01-20,2024-06-14,0,Permanent\n"

func writeRoster(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "BADGES.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBadgectl(t *testing.T) {
	path := writeRoster(t)

	cases := []struct {
		name     string
		args     []string
		wantOut  []string
		wantErr  string
		wantNone []string
	}{
		{
			name:    "search_permutation",
			args:    []string{"search", "--file", path, "dupont", "jean"},
			wantOut: []string{"EXT-001\t1001\tJean Dupont\n"},
		},
		{
			name:    "search_no_match",
			args:    []string{"search", "--file", path, "zzzz"},
			wantOut: []string{"Aucun résultat."},
		},
		{
			name: "show_detail",
			args: []string{"show", "--file", path, "--now", "2024-06-15", "1001"},
			wantOut: []string{
				"Nom complet:         Jean Dupont\n",
				"Statut du badge:     Actif\n",
				"Jours restants:      10 jours (Expire bientôt!)\n",
			},
		},
		{
			name:    "show_aggregate_policy",
			args:    []string{"show", "--file", path, "--now", "2024-06-15", "--policy", "aggregate", "EXT-002"},
			wantOut: []string{"Statut du badge:     Actif\n"},
		},
		{
			name:    "show_unknown",
			args:    []string{"show", "--file", path, "EXT-999"},
			wantErr: "no badge with ID EXT-999",
		},
		{
			name:    "show_bad_policy",
			args:    []string{"show", "--file", path, "--policy", "lenient", "EXT-001"},
			wantErr: "lenient",
		},
		{
			name:    "ask_expired",
			args:    []string{"ask", "--file", path, "--now", "2024-06-15", "Liste des badges expirés"},
			wantOut: []string{"1 badge(s) expirés :\n- Louis Pasteur (expiré le 14/06/2024)\n"},
		},
		{
			name:    "ask_without_roster",
			args:    []string{"ask", "--file", filepath.Join(t.TempDir(), "missing.csv"), "bonjour"},
			wantOut: []string{command.ReplyRosterNotLoaded},
		},
		{
			name: "stats",
			args: []string{"stats", "--file", path, "--now", "2024-06-15"},
			wantOut: []string{
				"Total:                       3\n",
				"Actifs:                      2\n",
				"VIP:                         1\n",
				"Expirés:                     1\n",
				"Expirant dans 30 jours:      1\n",
				"Émis en 2024-01:             2\n",
				"Type Permanent:              2\n",
			},
		},
		{
			name:    "bad_now",
			args:    []string{"stats", "--file", path, "--now", "demain"},
			wantErr: "unable to parse --now value [demain]",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.args...)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tc.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}
