package main

import "github.com/podbrief/summary-api/cmd"

// @title           PodBrief Summary API
// @version         1.0.0
// @description     Asynchronous generation of spoken podcast episode summaries
// @contact.name    API Support
// @contact.url     https://github.com/podbrief/summary-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
