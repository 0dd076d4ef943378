// Command tjm-calculator computes the minimum day rate a French
// micro-entrepreneur must charge, from the terminal or as a web page.
package main

func main() {
	Execute()
}
