// Package rpgmv implements the RPG Maker MV asset obfuscation scheme.
//
// Encrypted assets carry a 16-byte fake header followed by the original file,
// whose first 16 bytes are XOR-masked with a key stored in the game's System.json.
// The package locates and decodes that key, discovers encrypted assets in a tree,
// and masks or unmasks asset contents.
package rpgmv
