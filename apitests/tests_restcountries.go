package apitests

import (
	"github.com/rajkumar-bhange/api-testing-demo/apihelper"
	"github.com/rajkumar-bhange/api-testing-demo/fixtures"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoRestCountriesTests(t *T) {
	t.Epic("REST Countries API")
	t.Feature("Country Information API")

	t.Run("get all countries", func(t *T) {
		t.Story("Get All Countries")
		t.Severity("critical")
		t.Description("Verifies that the country list can be retrieved")

		// The service rejects /all without a field list.
		resp := t.Get(t.RestCountries(fixtures.CountriesAllPath), apihelper.RequestOptions{
			Params: map[string]string{"fields": "name,capital,population,area"},
		})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		countries := t.RequireArray(resp)
		require.Greater(t, countries.Count(), 0)
		t.RequireFields(countries.GetByIndex(0), "name", "capital", "population", "area")
	})

	t.Run("get country by name", func(t *T) {
		t.Story("Get Country by Name")
		t.Severity("high")
		t.Description("Verifies that a country can be found by name")

		resp := t.Get(t.RestCountries(fixtures.CountriesNamePath+"/"+fixtures.CountryUSA.Name), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		countries := t.RequireArray(resp)
		require.Greater(t, countries.Count(), 0)
		assert.Contains(t, commonName(countries.GetByIndex(0)), fixtures.CountryUSA.Name)
	})

	t.Run("get country by code", func(t *T) {
		t.Story("Get Country by Code")
		t.Severity("high")
		t.Description("Verifies that a country can be found by its three-letter code")

		resp := t.Get(t.RestCountries(fixtures.CountriesCodePath+"/"+fixtures.CountryUSA.Code), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		country := firstIfArray(t.RequireJSON(resp))
		assert.Contains(t, commonName(country), fixtures.CountryUSA.Name)
		assert.Equal(t, fixtures.CountryUSA.Code, country.GetByKey("cca3").StringValue())
	})

	t.Run("get countries by region", func(t *T) {
		t.Story("Get Countries by Region")
		t.Severity("medium")
		t.Description("Verifies that countries can be filtered by region")

		region := "Europe"
		resp := t.Get(t.RestCountries(fixtures.CountriesRegionPath+"/"+region), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		countries := t.RequireArray(resp)
		require.Greater(t, countries.Count(), 0)
		for _, country := range elements(countries) {
			assert.Equal(t, region, country.GetByKey("region").StringValue(), "country %q", commonName(country))
		}
	})

	t.Run("get countries by capital", func(t *T) {
		t.Story("Get Countries by Capital")
		t.Severity("medium")
		t.Description("Verifies that countries can be filtered by capital city")

		capital := "London"
		resp := t.Get(t.RestCountries(fixtures.CountriesCapitalPath+"/"+capital), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		countries := t.RequireArray(resp)
		require.Greater(t, countries.Count(), 0)
		assert.Contains(t, stringElements(countries.GetByIndex(0).GetByKey("capital")), capital)
	})

	t.Run("validate country data structure", func(t *T) {
		t.Story("Validate Country Data Structure")
		t.Severity("medium")
		t.Description("Verifies that country records have the expected fields and types")

		resp := t.Get(t.RestCountries(fixtures.CountriesNamePath+"/"+fixtures.CountryCanada.Name), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		countries := t.RequireArray(resp)
		require.Greater(t, countries.Count(), 0)
		country := countries.GetByIndex(0)
		t.RequireFields(country, "name", "capital", "population", "area", "region", "subregion",
			"languages", "currencies")

		assert.Equal(t, ldvalue.NumberType, country.GetByKey("population").Type())
		assert.Equal(t, ldvalue.NumberType, country.GetByKey("area").Type())
		assert.Equal(t, ldvalue.ArrayType, country.GetByKey("capital").Type())
		assert.Equal(t, fixtures.CountryCanada.Region, country.GetByKey("region").StringValue())
	})

	t.Run("handle invalid country name", func(t *T) {
		t.Story("Handle Invalid Country Name")
		t.Severity("low")
		t.Description("Verifies the response for a country that does not exist")

		resp := t.Get(t.RestCountries(fixtures.CountriesNamePath+"/NonExistentCountry123"), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusNotFound)
	})

	t.Run("get countries with specific fields", func(t *T) {
		t.Story("Get Countries with Specific Fields")
		t.Severity("low")
		t.Description("Verifies that only the requested fields are returned")

		resp := t.Get(t.RestCountries(fixtures.CountriesAllPath), apihelper.RequestOptions{
			Params: map[string]string{"fields": "name,capital,population"},
		})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		countries := t.RequireArray(resp)
		require.Greater(t, countries.Count(), 0)
		country := countries.GetByIndex(0)
		t.RequireFields(country, "name", "capital", "population")
		assert.NotContains(t, country.Keys(), "area")
		assert.NotContains(t, country.Keys(), "region")
	})
}

func commonName(country ldvalue.Value) string {
	return country.GetByKey("name").GetByKey("common").StringValue()
}

// firstIfArray unwraps a single-element array, since some versions of the lookup-by-code
// endpoint return the record inside an array.
func firstIfArray(v ldvalue.Value) ldvalue.Value {
	if v.Type() == ldvalue.ArrayType && v.Count() > 0 {
		return v.GetByIndex(0)
	}
	return v
}

func stringElements(array ldvalue.Value) []string {
	ret := make([]string, 0, array.Count())
	for _, e := range elements(array) {
		ret = append(ret, e.StringValue())
	}
	return ret
}
