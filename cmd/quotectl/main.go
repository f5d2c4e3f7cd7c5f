package main

import "warehouse-cost-service/internal/cli"

func main() {
	cli.Execute()
}
