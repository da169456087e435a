package tools

import (
	"os"

	"github.com/golang/glog"
)

// CreateFileOrFail creates (or truncates) filePath for writing or
// terminates the process.
func CreateFileOrFail(filePath string) *os.File {
	file, err := os.Create(filePath)
	if err != nil {
		glog.Fatal(err)
	}

	return file
}
