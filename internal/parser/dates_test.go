package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jan 2020", "2020-01-01"},
		{"January 2020", "2020-01-01"},
		{"JAN 2020", "2020-01-01"},
		{"Sept 2019", "2019-09-01"},
		{"Jan. 2018", "2018-01-01"},
		{"03/2021", "2021-03-01"},
		{"3/2021", "2021-03-01"},
		{"2017", "2017-01-01"},
		{"2021-05", "2021-05-01"},
		{"2020-02-15", "2020-02-15"},
	}

	for _, tt := range tests {
		got := ConvertToDate(tt.in)
		require.NotNil(t, got, "日期 %q 应能被解析", tt.in)
		assert.Equal(t, tt.want, *got, "日期 %q 的转换结果不正确", tt.in)
	}
}

func TestConvertToDate_Unparseable(t *testing.T) {
	for _, in := range []string{"", "  ", "Present", "current", "Now", "someday"} {
		assert.Nil(t, ConvertToDate(in), "%q 应返回nil", in)
	}
}

func TestIsOpenEnded(t *testing.T) {
	assert.True(t, IsOpenEnded("Present"))
	assert.True(t, IsOpenEnded(" ongoing "))
	assert.False(t, IsOpenEnded("2020"))
}
