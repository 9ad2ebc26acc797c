package version

import (
	"runtime"
	"testing"

	build "github.com/cozy/cozy-barcode/pkg/config"
	"github.com/cozy/cozy-barcode/tests/testutils"
)

func TestVersion(t *testing.T) {
	ts := testutils.GetTestServer(t, "/version", Routes)

	e := testutils.CreateTestClient(t, ts.URL)

	obj := e.GET("/version").
		Expect().Status(200).
		JSON().Object()
	obj.Value("version").String().IsEqual(build.Version)
	obj.Value("build_mode").String().IsEqual(build.BuildMode)
	obj.Value("runtime_version").String().IsEqual(runtime.Version())

	e.HEAD("/version/").Expect().Status(200)
}
