package profile

import (
	"atlas-introductions/rest"
	"fmt"
	"os"
)

const (
	profilesResource = "members/%d/compatibility-profile"
)

func getBaseRequest() string {
	return os.Getenv("PROFILES")
}

func requestById(memberId uint32) rest.Request[RestModel] {
	return rest.MakeGetRequest[RestModel](fmt.Sprintf(getBaseRequest()+profilesResource, memberId))
}

func requestStore(memberId uint32, input RestModel) rest.Request[RestModel] {
	return rest.MakePostRequest[RestModel](fmt.Sprintf(getBaseRequest()+profilesResource, memberId), input)
}
