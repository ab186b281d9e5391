package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nameplate/internal/chains"
	id "nameplate/pkg/domain"
)

func TestSelectedChain(t *testing.T) {
	reg, err := chains.New(chains.Mainnet, chains.Builtin()...)
	require.NoError(t, err)
	t.Cleanup(func() { chainFlag = "" })

	tests := []struct {
		flag    string
		want    id.ChainID
		wantErr bool
	}{
		{flag: "", want: 0},
		{flag: "base", want: chains.Base},
		{flag: "8453", want: chains.Base},
		{flag: " 10 ", want: chains.Optimism},
		{flag: "999999", wantErr: true},
		{flag: "not-a-chain", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			chainFlag = tt.flag
			got, err := selectedChain(reg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSchemaFlag(t *testing.T) {
	account := id.MustSchemaUID("0xf8b05c79f090979bf4a80270aba232dff11a10d9ca55c4f88de95317970f0de9")
	country := id.MustSchemaUID("0x1801901fabd0e6189356b4fb52bb0ab855276d84f7ec140839fbd1f6801ca065")

	got, err := parseSchemaFlag([]string{account.String() + ",0x12"})
	require.Error(t, err)
	assert.Nil(t, got)

	got, err = parseSchemaFlag([]string{account.String() + ", " + country.String(), account.String()})
	require.NoError(t, err)
	assert.Equal(t, []id.SchemaUID{account, country}, got)

	got, err = parseSchemaFlag(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
