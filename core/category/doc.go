// Package category partitions indexed files into named buckets of records.
//
// A Classifier is configured with an ordered table of Rules. Each rule
// matches either a path prefix alone or a prefix plus a substring. Matching is
// cumulative across packages: a category's bucket only comes into existence
// once the number of matching files strictly exceeds the rule's threshold,
// which keeps a stray file under a popular prefix from spawning a category.
// Until then matches are held pending; when the threshold is crossed every
// pending match is materialized at once.
//
// # Bucket Keys
//
// Records are keyed by their short name. Rules with a KeySeparator instead
// key by the text after the first separator, for records whose name embeds
// the identifier of the record they belong to.
//
// # Rule Files
//
// Rules can be loaded from YAML:
//
//	categories:
//	  - name: Characters
//	    prefix: FortniteGame/Content/Athena/Items/Cosmetics/Characters/
//	  - name: Heroes
//	    prefix: FortniteGame/Content/Athena/Heroes/
//	    contains: HID_
//	    threshold: 3
package category
