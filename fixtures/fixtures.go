// Package fixtures holds the endpoint paths, expected status codes, response-time limits
// and canned records that the API test suites compare against.
package fixtures

import (
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Default base URLs of the public services under test. These can be overridden through
// configuration.
const (
	JSONPlaceholderBaseURL = "https://jsonplaceholder.typicode.com"
	RestCountriesBaseURL   = "https://restcountries.com/v3.1"
	HTTPBinBaseURL         = "https://httpbin.org"
)

// Paths on the placeholder CRUD service.
const (
	UsersPath    = "/users"
	PostsPath    = "/posts"
	CommentsPath = "/comments"
	AlbumsPath   = "/albums"
	PhotosPath   = "/photos"
	TodosPath    = "/todos"
)

// Paths on the country lookup service.
const (
	CountriesAllPath     = "/all"
	CountriesNamePath    = "/name"
	CountriesCodePath    = "/alpha"
	CountriesRegionPath  = "/region"
	CountriesCapitalPath = "/capital"
)

// Paths on the request echo service.
const (
	EchoGetPath       = "/get"
	EchoPostPath      = "/post"
	EchoPutPath       = "/put"
	EchoDeletePath    = "/delete"
	EchoHeadersPath   = "/headers"
	EchoStatusPath    = "/status"
	EchoDelayPath     = "/delay"
	EchoBasicAuthPath = "/basic-auth"
)

const (
	StatusSuccess             = 200
	StatusCreated             = 201
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusInternalServerError = 500
)

const (
	ResponseTimeFast     = 1000 * time.Millisecond
	ResponseTimeNormal   = 3000 * time.Millisecond
	ResponseTimeSlow     = 5000 * time.Millisecond
	ResponseTimeVerySlow = 10000 * time.Millisecond
)

// UserFields, PostFields and CommentFields are the keys every record of that kind must
// have.
var (
	UserFields    = []string{"id", "name", "username", "email", "address", "phone", "website", "company"}
	PostFields    = []string{"id", "title", "body", "userId"}
	CommentFields = []string{"id", "postId", "name", "email", "body"}
	CountryFields = []string{"name", "capital", "region", "population", "cca3"}
)

// ValidUser is the first record of the placeholder service's user list.
func ValidUser() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("id", ldvalue.Int(1)).
		Set("name", ldvalue.String("Leanne Graham")).
		Set("username", ldvalue.String("Bret")).
		Set("email", ldvalue.String("Sincere@april.biz")).
		Set("phone", ldvalue.String("1-770-736-8031 x56442")).
		Set("website", ldvalue.String("hildegard.org")).
		Build()
}

// ValidPost is the first record of the placeholder service's post list.
func ValidPost() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("id", ldvalue.Int(1)).
		Set("title", ldvalue.String("sunt aut facere repellat provident occaecati excepturi optio reprehenderit")).
		Set("body", ldvalue.String("quia et suscipit\nsuscipit recusandae consequuntur expedita et cum\n"+
			"reprehenderit molestiae ut ut quas totam\nnostrum rerum est autem sunt rem eveniet architecto")).
		Set("userId", ldvalue.Int(1)).
		Build()
}

// ValidComment is the first record of the placeholder service's comment list.
func ValidComment() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("id", ldvalue.Int(1)).
		Set("postId", ldvalue.Int(1)).
		Set("name", ldvalue.String("id labore ex et quam laborum")).
		Set("email", ldvalue.String("Eliseo@gardner.biz")).
		Set("body", ldvalue.String("laudantium enim quasi est quidem magnam voluptate ipsam eos\n"+
			"tempora quo necessitatibus\ndolor quam autem quasi\nreiciendis et nam sapiente accusantium")).
		Build()
}

// Country is a canned country record.
type Country struct {
	Name       string
	Code       string
	Capital    string
	Region     string
	Population int
}

var (
	CountryUSA    = Country{Name: "United States", Code: "USA", Capital: "Washington, D.C.", Region: "Americas", Population: 331002651}
	CountryCanada = Country{Name: "Canada", Code: "CAN", Capital: "Ottawa", Region: "Americas", Population: 37742154}
)

// EchoHeaders are custom headers sent to the echo service, which should return them.
func EchoHeaders() map[string]string {
	return map[string]string{
		"X-Test-Header": "Test Value",
		"X-API-Key":     "test-api-key",
		"User-Agent":    "API Test Agent",
	}
}

// EchoParams are query parameters sent to the echo service, which should return them.
func EchoParams() map[string]string {
	return map[string]string{
		"param1": "value1",
		"param2": "value2",
		"number": "123",
	}
}
