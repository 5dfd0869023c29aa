package main

import (
	"context"
	"flag"
	"log"

	"terraform-provider-pve/internal/provider"

	"github.com/hashicorp/terraform-plugin-framework/providerserver"
)

// set by goreleaser
var version = "dev"

func main() {
	var debug bool

	flag.BoolVar(&debug, "debug", false, "set to true to run the provider with support for debuggers like delve")
	flag.Parse()

	opts := providerserver.ServeOpts{
		Address: "registry.terraform.io/pve-tools/pve",
		Debug:   debug,
	}

	if err := providerserver.Serve(context.Background(), provider.New(version), opts); err != nil {
		log.Fatal(err.Error())
	}
}
