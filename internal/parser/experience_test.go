package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractExperience(t *testing.T) {
	content := `Senior Backend Engineer
Acme Corp
Jan 2021 - Present
• Built the payment gateway in Go
• Led a team of four
Software Engineer
Globex Ltd
Jun 2018 - Dec 2020
- Maintained REST APIs`

	experiences := ExtractExperience(content)
	require.Len(t, experiences, 2, "每段经历只应产生一条记录")

	first := experiences[0]
	assert.Equal(t, "Senior Backend Engineer", first.Title)
	assert.Equal(t, "Acme Corp", first.Company)
	require.NotNil(t, first.StartDate)
	assert.Equal(t, "2021-01-01", *first.StartDate)
	assert.Nil(t, first.EndDate, "Present 应视为无结束日期")
	assert.True(t, first.CurrentlyWorking)
	assert.Equal(t, "Built the payment gateway in Go. Led a team of four", first.Description)

	second := experiences[1]
	assert.Equal(t, "Software Engineer", second.Title)
	assert.Equal(t, "Globex Ltd", second.Company)
	require.NotNil(t, second.StartDate)
	require.NotNil(t, second.EndDate)
	assert.Equal(t, "2018-06-01", *second.StartDate)
	assert.Equal(t, "2020-12-01", *second.EndDate)
	assert.False(t, second.CurrentlyWorking)
	assert.Equal(t, "Maintained REST APIs", second.Description)
}

func TestExtractExperience_DateFormats(t *testing.T) {
	tests := []struct {
		name  string
		dates string
		start string
		end   string
	}{
		{"年份", "2015 - 2017", "2015-01-01", "2017-01-01"},
		{"月/年", "03/2019 - 11/2020", "2019-03-01", "2020-11-01"},
		{"全称月份", "March 2019 to November 2020", "2019-03-01", "2020-11-01"},
		{"长横线", "Sept 2016 – Aug 2018", "2016-09-01", "2018-08-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			experiences := ExtractExperience("Data Analyst\nInitech\n" + tt.dates)
			require.Len(t, experiences, 1)
			require.NotNil(t, experiences[0].StartDate)
			require.NotNil(t, experiences[0].EndDate)
			assert.Equal(t, tt.start, *experiences[0].StartDate)
			assert.Equal(t, tt.end, *experiences[0].EndDate)
			assert.False(t, experiences[0].CurrentlyWorking)
		})
	}
}

func TestExtractExperience_NoCompanyNoDate(t *testing.T) {
	// 只有标题和描述，没有公司和日期时不产生记录
	experiences := ExtractExperience("Freelance\n• Various gigs")
	assert.Empty(t, experiences)
	assert.NotNil(t, experiences)
}

func TestExtractExperience_DateOnly(t *testing.T) {
	experiences := ExtractExperience("Research Assistant\n2019 - 2020")
	require.Len(t, experiences, 1)
	assert.Equal(t, "", experiences[0].Company)
	require.NotNil(t, experiences[0].StartDate)
	assert.Equal(t, "2019-01-01", *experiences[0].StartDate)
}

func TestExtractExperience_CompanyOnTitleLine(t *testing.T) {
	content := "Software Engineer at Google\nJan 2020 - Dec 2021\n• Built APIs\nData Analyst at Meta\nMar 2018 - Dec 2019\n• Analysed data"

	experiences := ExtractExperience(content)
	require.Len(t, experiences, 2, "下一段经历的标题不应被当作公司吞掉")

	assert.Equal(t, "Software Engineer at Google", experiences[0].Title)
	assert.Equal(t, "", experiences[0].Company)
	assert.Equal(t, "Built APIs", experiences[0].Description)
	require.NotNil(t, experiences[0].StartDate)
	assert.Equal(t, "2020-01-01", *experiences[0].StartDate)

	assert.Equal(t, "Data Analyst at Meta", experiences[1].Title)
	assert.Equal(t, "Analysed data", experiences[1].Description)
	require.NotNil(t, experiences[1].EndDate)
	assert.Equal(t, "2019-12-01", *experiences[1].EndDate)
}

func TestExtractExperience_CompanyAfterDate(t *testing.T) {
	content := "Backend Engineer\n2019 - 2021\nInitech\n• Wrote services\nPlatform Engineer\n2021 - 2023\nGlobex\n• Ran clusters"

	experiences := ExtractExperience(content)
	require.Len(t, experiences, 2)
	assert.Equal(t, "Initech", experiences[0].Company)
	assert.Equal(t, "Wrote services", experiences[0].Description)
	assert.Equal(t, "Platform Engineer", experiences[1].Title)
	assert.Equal(t, "Globex", experiences[1].Company)
}
