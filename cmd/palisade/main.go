// Command palisade runs an embedded data-grid cache node with
// realm-based integrated security.
package main

func main() {
	Execute()
}
